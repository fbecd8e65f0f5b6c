// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"slices"
	"testing"
)

func TestGlob(t *testing.T) {
	t.Parallel()

	fs, _ := newTestFS(t, map[string]string{
		"/srv/a.txt":       "",
		"/srv/b.txt":       "",
		"/srv/c.md":        "",
		"/srv/.hidden.txt": "",
		"/srv/docs/x.txt":  "",
		"/srv/docs/y.txt":  "",
		"/srv/notes/z.txt": "",
		"/srv/notes/sub/w": "",
	})
	if _, err := fs.CreateFile("virtual.txt"); err != nil {
		t.Fatalf("CreateFile() error: %v", err)
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"*.txt", []string{"a.txt", "b.txt", "virtual.txt"}},
		{".*.txt", []string{".hidden.txt"}},
		{"?.md", []string{"c.md"}},
		{"*/*.txt", []string{"docs/x.txt", "docs/y.txt", "notes/z.txt"}},
		{"docs/[xy].txt", []string{"docs/x.txt", "docs/y.txt"}},
		{"{docs,notes}/", []string{"docs/", "notes/"}},
		{"/srv/docs/*", []string{"/srv/docs/x.txt", "/srv/docs/y.txt"}},
		{"./docs/x*", []string{"./docs/x.txt"}},
		{"*.none", []string{}},
		{"missing/*", []string{}},
	}
	for _, tt := range tests {
		got, err := fs.Glob(tt.pattern)
		if err != nil {
			t.Errorf("Glob(%q) error: %v", tt.pattern, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Glob(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestHasMeta(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"*.go", "a?", "[ab]", "{x,y}"} {
		if !HasMeta(s) {
			t.Errorf("HasMeta(%q) = false", s)
		}
	}
	for _, s := range []string{"plain", "a.txt", "dir/file"} {
		if HasMeta(s) {
			t.Errorf("HasMeta(%q) = true", s)
		}
	}
}
