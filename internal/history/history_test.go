// SPDX-License-Identifier: MPL-2.0

package history

import (
	"errors"
	"slices"
	"testing"
)

func TestStore_AddDeduplicates(t *testing.T) {
	t.Parallel()

	s := New("ls", "cd docs", "cat a.txt", "ls")
	if got, want := s.Lines(), []string{"cd docs", "cat a.txt", "ls"}; !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}

	s.Add("cd docs")
	if got, want := s.Lines(), []string{"cat a.txt", "ls", "cd docs"}; !slices.Equal(got, want) {
		t.Errorf("after re-adding: Lines() = %q, want %q", got, want)
	}

	seen := map[string]bool{}
	for _, l := range s.Lines() {
		if seen[l] {
			t.Errorf("duplicate entry %q", l)
		}
		seen[l] = true
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		offset  int
		want    []string
		wantErr error
	}{
		{"first", 0, []string{"b", "c"}, nil},
		{"last", 2, []string{"a", "b"}, nil},
		{"negative", -1, []string{"a", "b"}, nil},
		{"negative first", -3, []string{"b", "c"}, nil},
		{"past end", 3, []string{"a", "b", "c"}, ErrOutOfRange},
		{"before start", -4, []string{"a", "b", "c"}, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := New("a", "b", "c")
			err := s.Delete(tt.offset)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Delete(%d) error = %v, want %v", tt.offset, err, tt.wantErr)
			}
			if got := s.Lines(); !slices.Equal(got, tt.want) {
				t.Errorf("Lines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStore_Last(t *testing.T) {
	t.Parallel()

	s := New("a", "b", "c")

	start, lines, err := s.Last(2)
	if err != nil || start != 1 || !slices.Equal(lines, []string{"b", "c"}) {
		t.Errorf("Last(2) = %d, %q, %v; want 1, [b c]", start, lines, err)
	}
	start, lines, _ = s.Last(10)
	if start != 0 || len(lines) != 3 {
		t.Errorf("Last(10) = %d, %q; want everything", start, lines)
	}
	if _, lines, _ = s.Last(0); len(lines) != 0 {
		t.Errorf("Last(0) = %q, want none", lines)
	}
	if _, _, err := s.Last(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Last(-1) error = %v, want ErrOutOfRange", err)
	}
}

func TestStore_Format(t *testing.T) {
	t.Parallel()

	s := &Store{}
	for i := range 12 {
		s.Add(string(rune('a' + i)))
	}
	start, lines, _ := s.Last(3)
	want := "" +
		" 9  j\n" +
		"10  k\n" +
		"11  l\n"
	if got := s.Format(start, lines); got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestStore_ClearAndContains(t *testing.T) {
	t.Parallel()

	s := New("x")
	if !s.Contains("x") {
		t.Error("Contains(x) = false")
	}
	s.Clear()
	if s.Len() != 0 || s.Contains("x") {
		t.Errorf("after Clear: Len() = %d, Contains(x) = %v", s.Len(), s.Contains("x"))
	}
}
