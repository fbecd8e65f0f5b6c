// SPDX-License-Identifier: MPL-2.0

package surface

import (
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Terminal is an interactive line-editing surface over a raw terminal
// stream, such as a local TTY in raw mode or an SSH channel.
//
// Output may be written from other goroutines (window resizes, server
// notices) while a line is being read; reads are handed to one caller at
// a time so each typed line is observed exactly once.
type Terminal struct {
	mu     sync.Mutex
	readMu sync.Mutex
	term   *term.Terminal
	paint  painter
}

var _ Surface = (*Terminal)(nil)

// NewTerminal wraps rw with a line editor rendering colors for profile.
func NewTerminal(rw io.ReadWriter, profile termenv.Profile) *Terminal {
	return &Terminal{
		term:  term.NewTerminal(rw, ""),
		paint: newPainter(lipgloss.NewRenderer(rw), profile),
	}
}

// SetSize updates the editor's idea of the window dimensions.
func (t *Terminal) SetSize(width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term.SetSize(width, height)
}

// Print writes text and a newline.
func (t *Terminal) Print(text string, tags ...Tag) {
	t.write(t.paint.paint(text, tags...) + "\n")
}

// Write writes spans without a newline.
func (t *Terminal) Write(spans ...Span) {
	t.write(t.paint.spans(spans))
}

func (t *Terminal) write(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.term.Write([]byte(s))
}

// ReadLine reads one edited line. Ctrl-D on an empty line yields io.EOF.
func (t *Terminal) ReadLine(prompt ...Span) (string, error) {
	t.readMu.Lock()
	defer t.readMu.Unlock()

	t.mu.Lock()
	t.term.SetPrompt(t.paint.spans(prompt))
	t.mu.Unlock()
	return t.term.ReadLine()
}

// Confirm asks prompt and reads a y/n answer.
func (t *Terminal) Confirm(prompt string) bool {
	line, err := t.ReadLine(Span{Text: prompt})
	return err == nil && isYes(line)
}

// Clear erases the screen.
func (t *Terminal) Clear() {
	t.write(clearScreen)
}
