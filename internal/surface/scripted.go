// SPDX-License-Identifier: MPL-2.0

package surface

// Scripted feeds a fixed list of lines to ReadLine as if they were typed,
// echoing prompt and line, then defers to the wrapped surface.
type Scripted struct {
	Surface
	lines []string
}

// NewScripted wraps inner so that lines are read first.
func NewScripted(inner Surface, lines []string) *Scripted {
	return &Scripted{Surface: inner, lines: lines}
}

// Pending returns how many script lines have not been read yet.
func (s *Scripted) Pending() int {
	return len(s.lines)
}

// ReadLine returns the next script line, or reads from the wrapped surface
// once the script is exhausted.
func (s *Scripted) ReadLine(prompt ...Span) (string, error) {
	if len(s.lines) == 0 {
		return s.Surface.ReadLine(prompt...)
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	s.Write(prompt...)
	s.Print(line)
	return line, nil
}

// Confirm answers from the next script line while any remain.
func (s *Scripted) Confirm(prompt string) bool {
	if len(s.lines) == 0 {
		return s.Surface.Confirm(prompt)
	}
	line, _ := s.ReadLine(Span{Text: prompt})
	return isYes(line)
}
