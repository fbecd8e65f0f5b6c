// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"golang.org/x/exp/maps"
)

// Stopper is anything with a Stop method, typically a server.
type Stopper interface {
	Stop() error
}

// MemFS builds an in-memory backend from a path -> content map.
// Paths ending in "/" create directories; parents are created as needed.
// The test fails immediately if any entry cannot be written.
func MemFS(t testing.TB, tree map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	paths := maps.Keys(tree)
	slices.Sort(paths)
	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			MustMkdirAll(t, fs, p)
			continue
		}
		MustWriteFile(t, fs, p, tree[p])
	}
	return fs
}

// MustMkdirAll creates path and its parents on fs.
func MustMkdirAll(t testing.TB, fs afero.Fs, path string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.FromSlash(path), 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path on fs, creating parent directories.
func MustWriteFile(t testing.TB, fs afero.Fs, path, content string) {
	t.Helper()
	path = filepath.FromSlash(path)
	MustMkdirAll(t, fs, filepath.Dir(path))
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustStop stops s, logging rather than failing on error since shutdown
// errors during cleanup are typically non-fatal.
func MustStop(t testing.TB, s Stopper) {
	t.Helper()
	if err := s.Stop(); err != nil {
		t.Logf("warning: stop returned error: %v", err)
	}
}
