// SPDX-License-Identifier: MPL-2.0

package surface

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Stream is a line surface over a plain reader and writer, used when input
// is not a terminal.
type Stream struct {
	mu    sync.Mutex
	in    *bufio.Reader
	out   io.Writer
	paint painter
}

var _ Surface = (*Stream)(nil)

// NewStream reads lines from r and writes to w, coloring for profile.
func NewStream(r io.Reader, w io.Writer, profile termenv.Profile) *Stream {
	return &Stream{
		in:    bufio.NewReader(r),
		out:   w,
		paint: newPainter(lipgloss.NewRenderer(w), profile),
	}
}

// Print writes text and a newline.
func (s *Stream) Print(text string, tags ...Tag) {
	s.write(s.paint.paint(text, tags...) + "\n")
}

// Write writes spans without a newline.
func (s *Stream) Write(spans ...Span) {
	s.write(s.paint.spans(spans))
}

func (s *Stream) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, text)
}

// ReadLine prints prompt and reads up to the next newline. A final line
// without a terminator is still returned; io.EOF follows it.
func (s *Stream) ReadLine(prompt ...Span) (string, error) {
	if len(prompt) > 0 {
		s.Write(prompt...)
	}
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks prompt and reads a y/n answer.
func (s *Stream) Confirm(prompt string) bool {
	line, err := s.ReadLine(Span{Text: prompt})
	return err == nil && isYes(line)
}

// Clear erases the screen unless output is plain.
func (s *Stream) Clear() {
	if !s.paint.plain {
		s.write(clearScreen)
	}
}
