// SPDX-License-Identifier: MPL-2.0

// Package surface provides the text surfaces a shell session talks to.
//
// Commands only ever print lines, read lines, ask yes/no questions and
// clear the screen. Terminal drives an interactive line editor (a local TTY
// or an SSH channel), Stream serves pipes, Buffer records everything for
// tests and Scripted replays a start-up script before handing over.
package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Text tags understood by every surface. Earlier tags win when combined.
const (
	None Tag = iota
	Red
	Green
	Blue
	Bold
)

// clearScreen homes the cursor and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

type (
	// Tag marks how a piece of text should be presented.
	Tag int

	// Span is a run of text sharing one tag.
	Span struct {
		Text string
		Tag  Tag
	}

	// Surface is the narrow interface a session needs from its user-facing side.
	Surface interface {
		// Print writes text followed by a newline.
		Print(text string, tags ...Tag)
		// Write writes spans without a trailing newline.
		Write(spans ...Span)
		// ReadLine shows prompt and returns one line without its terminator.
		// It returns io.EOF once input is exhausted.
		ReadLine(prompt ...Span) (string, error)
		// Confirm asks a yes/no question; only an answer starting with y or Y is a yes.
		Confirm(prompt string) bool
		// Clear empties the visible screen.
		Clear()
	}

	// painter renders tags for a color profile.
	painter struct {
		styles map[Tag]lipgloss.Style
		plain  bool
	}
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Bold:
		return "bold"
	default:
		return "none"
	}
}

func newPainter(r *lipgloss.Renderer, profile termenv.Profile) painter {
	r.SetColorProfile(profile)
	return painter{
		plain: profile == termenv.Ascii,
		styles: map[Tag]lipgloss.Style{
			Red:   r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
			Green: r.NewStyle().Foreground(lipgloss.Color("#10B981")),
			Blue:  r.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
			Bold:  r.NewStyle().Bold(true),
		},
	}
}

func (p painter) paint(text string, tags ...Tag) string {
	if p.plain || len(tags) == 0 || text == "" {
		return text
	}
	var style lipgloss.Style
	styled := false
	for _, t := range tags {
		s, ok := p.styles[t]
		if !ok {
			continue
		}
		if !styled {
			style, styled = s, true
			continue
		}
		style = style.Inherit(s)
	}
	if !styled {
		return text
	}
	// Render per line so multi-line output keeps its layout.
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (p painter) spans(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(p.paint(s.Text, s.Tag))
	}
	return b.String()
}

// PlainText joins the text of spans, dropping tags.
func PlainText(spans ...Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// isYes reports whether a confirmation answer is affirmative.
func isYes(answer string) bool {
	answer = strings.TrimSpace(answer)
	return answer != "" && (answer[0] == 'y' || answer[0] == 'Y')
}
