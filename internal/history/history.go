// SPDX-License-Identifier: MPL-2.0

// Package history keeps the ordered log of command lines for a session.
// Each distinct line appears at most once, at the position it was last used.
package history

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// ErrOutOfRange is returned for offsets outside the store.
var ErrOutOfRange = errors.New("history position out of range")

// Store is an insertion-ordered, dedup-on-reinsert list of lines.
// The zero value is ready to use. It is not safe for concurrent use.
type Store struct {
	lines []string
}

// New returns a store seeded with lines, applying the dedup rule to each.
func New(lines ...string) *Store {
	s := &Store{}
	for _, l := range lines {
		s.Add(l)
	}
	return s
}

// Add appends line, removing any earlier occurrence first.
func (s *Store) Add(line string) {
	if i := slices.Index(s.lines, line); i >= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	}
	s.lines = append(s.lines, line)
}

// Contains reports whether line is present.
func (s *Store) Contains(line string) bool {
	return slices.Contains(s.lines, line)
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.lines = nil
}

// Delete removes the entry at offset. Negative offsets count from the end,
// so -1 is the most recent entry.
func (s *Store) Delete(offset int) error {
	i := offset
	if i < 0 {
		i += len(s.lines)
	}
	if i < 0 || i >= len(s.lines) {
		return fmt.Errorf("%d: %w", offset, ErrOutOfRange)
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	return nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.lines)
}

// Lines returns a copy of all entries, oldest first.
func (s *Store) Lines() []string {
	return slices.Clone(s.lines)
}

// Last returns the index of the first returned entry and the last n entries.
// n larger than the store returns everything; n == 0 returns nothing.
func (s *Store) Last(n int) (int, []string, error) {
	if n < 0 {
		return 0, nil, fmt.Errorf("%d: %w", n, ErrOutOfRange)
	}
	start := max(len(s.lines)-n, 0)
	return start, slices.Clone(s.lines[start:]), nil
}

// Format renders entries starting at index start, one per line, with the
// index right-aligned to the digit width of the store's total size.
func (s *Store) Format(start int, lines []string) string {
	width := len(fmt.Sprint(len(s.lines)))
	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%*d  %s\n", width, start+i, l)
	}
	return b.String()
}
