// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestCp_ConflictMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		answers []bool
		want    string
		prompts []string
	}{
		{name: "plain overwrites", line: "cp a.txt b.txt", want: "new"},
		{name: "no-clobber keeps", line: "cp -n a.txt b.txt", want: "old"},
		{
			name:    "interactive refused keeps",
			line:    "cp -i a.txt b.txt",
			answers: []bool{false},
			want:    "old",
			prompts: []string{"overwrite '/srv/b.txt'? "},
		},
		{
			name:    "interactive accepted overwrites",
			line:    "cp -i a.txt b.txt",
			answers: []bool{true},
			want:    "new",
			prompts: []string{"overwrite '/srv/b.txt'? "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, map[string]string{"/srv/a.txt": "new", "/srv/b.txt": "old"})
			env.out.QueueAnswers(tt.answers...)

			env.mustRun(t, tt.line)
			if got := env.read(t, "b.txt"); got != tt.want {
				t.Errorf("b.txt = %q, want %q", got, tt.want)
			}
			if got := env.output(); got != "" {
				t.Errorf("%s printed %q, want nothing", tt.line, got)
			}
			if got := env.out.Prompts(); !slices.Equal(got, tt.prompts) {
				t.Errorf("prompts = %q, want %q", got, tt.prompts)
			}
			disk, err := afero.ReadFile(env.backend, "/srv/b.txt")
			if err != nil || string(disk) != "old" {
				t.Errorf("backend b.txt = %q, %v; want it untouched", disk, err)
			}
		})
	}
}

// Copy a tree to a destination that does not exist yet.
func TestCp_RecursiveScenario(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{
		"/srv/srcdir/x.txt":          "1",
		"/srv/srcdir/sub/y.txt":      "2",
		"/srv/srcdir/sub/deep/z.txt": "3",
		"/srv/srcdir/empty/":         "",
	})

	env.mustRun(t, "cp -r srcdir destdir")
	for path, want := range map[string]string{
		"destdir/x.txt":          "1",
		"destdir/sub/y.txt":      "2",
		"destdir/sub/deep/z.txt": "3",
	} {
		if got := env.read(t, path); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
	empty := mustLookupNode(t, env, "destdir/empty")
	if names, _ := empty.Names(); !empty.IsDir() || len(names) != 0 {
		t.Errorf("destdir/empty = dir %v with %v, want empty directory", empty.IsDir(), names)
	}
	if got := env.read(t, "srcdir/x.txt"); got != "1" {
		t.Errorf("source changed: srcdir/x.txt = %q", got)
	}
}

func TestCp_IntoDirectory(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{
		"/srv/a.txt":       "a",
		"/srv/b.txt":       "b",
		"/srv/src/c.txt":   "c",
		"/srv/dest/":       "",
		"/srv/contents/":   "",
		"/srv/targeted/":   "",
		"/srv/d/d.txt":     "d",
		"/srv/d/old.txt":   "o",
		"/srv/merge/d/k.t": "k",
	})

	env.mustRun(t, "cp a.txt b.txt dest")
	if env.read(t, "dest/a.txt") != "a" || env.read(t, "dest/b.txt") != "b" {
		t.Error("cp a.txt b.txt dest did not copy both files")
	}

	env.mustRun(t, "cp -r src/ contents")
	if got := env.read(t, "contents/c.txt"); got != "c" {
		t.Errorf("contents/c.txt = %q, want the child of src copied directly", got)
	}
	if env.FS.Exists("contents/src") {
		t.Error("trailing slash source copied the directory itself")
	}

	env.mustRun(t, "cp -t targeted a.txt src/c.txt")
	if env.read(t, "targeted/a.txt") != "a" || env.read(t, "targeted/c.txt") != "c" {
		t.Error("cp -t did not copy into the target directory")
	}

	env.mustRun(t, "cp -r d merge")
	if env.read(t, "merge/d/k.t") != "k" || env.read(t, "merge/d/d.txt") != "d" {
		t.Error("copying onto an existing directory did not merge")
	}
}

func TestCp_NoTargetDirectoryMerges(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{
		"/srv/d/new.txt":  "n",
		"/srv/e/keep.txt": "k",
	})

	env.mustRun(t, "cp -rT d e")
	if env.read(t, "e/new.txt") != "n" || env.read(t, "e/keep.txt") != "k" {
		t.Error("cp -rT d e did not merge d into e")
	}
	if env.FS.Exists("e/d") {
		t.Error("cp -T created e/d")
	}
}

func TestCp_Verbose(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{"/srv/a.txt": "a", "/srv/b.txt": "b"})

	env.mustRun(t, "cp -v a.txt c.txt")
	if got, want := env.output(), "'/srv/a.txt' -> '/srv/c.txt'\n"; got != want {
		t.Errorf("cp -v = %q, want %q", got, want)
	}
	env.mustRun(t, "cp -nv a.txt b.txt")
	if got, want := env.output(), "skipped '/srv/b.txt'\n"; got != want {
		t.Errorf("cp -nv = %q, want %q", got, want)
	}
}

func TestCp_Errors(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"/srv/a.txt":      "a",
		"/srv/b.txt":      "b",
		"/srv/c.txt":      "c",
		"/srv/dir/f.txt":  "f",
		"/srv/dir/inner/": "",
	}
	tests := []struct {
		line     string
		wantErr  string
		wantLine string
	}{
		{line: "cp a.txt", wantErr: "missing destination file operand after 'a.txt'"},
		{line: "cp", wantErr: "missing file operand"},
		{line: "cp -i -n a.txt b.txt", wantErr: "options '-i', '-n' are mutually exclusive"},
		{line: "cp a.txt b.txt c.txt", wantErr: "target 'c.txt' is not a directory"},
		{line: "cp a.txt b.txt nowhere", wantErr: "target 'nowhere' is not a directory"},
		{line: "cp -t c.txt a.txt", wantErr: "target 'c.txt' is not a directory"},
		{line: "cp missing b.txt", wantErr: "cannot stat 'missing': No such file or directory"},
		{line: "cp a.txt no/such/file", wantErr: "cannot create 'no/such/file': No such file or directory"},
		{line: "cp dir copy", wantLine: "cp: -r not specified; omitting directory '/srv/dir'"},
		{line: "cp a.txt a.txt", wantLine: "cp: '/srv/a.txt' and '/srv/a.txt' are the same file"},
		{line: "cp a.txt dir/inner/..", wantLine: ""},
		{line: "cp -r dir dir/inner", wantLine: "cp: cannot copy a directory, '/srv/dir', into itself, '/srv/dir/inner/dir'"},
		{line: "cp -r dir c.txt", wantLine: "cp: cannot overwrite non-directory '/srv/c.txt' with directory '/srv/dir'"},
		{line: "cp -T a.txt dir", wantLine: "cp: cannot overwrite directory '/srv/dir' with non-directory"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, tree)
			err := env.run(t, tt.line)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("error = %v, want %q", err, tt.wantErr)
				}
				if got := env.output(); got != "" {
					t.Errorf("printed %q before failing", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := ""
			if tt.wantLine != "" {
				want = tt.wantLine + "\n"
			}
			if got := env.output(); got != want {
				t.Errorf("printed %q, want %q", got, want)
			}
		})
	}
}

func TestCp_UsageErrorsAreTyped(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{"/srv/a.txt": "a"})

	var ue *UsageError
	if err := env.run(t, "cp a.txt"); !errors.As(err, &ue) {
		t.Errorf("cp a.txt error = %v, want *UsageError", err)
	}
	if err := env.run(t, "cp -r -R a.txt b.txt"); err != nil {
		t.Errorf("-R is not accepted alongside -r: %v", err)
	}
	if !strings.Contains(newCpCommand().Usage(), "-r, -R, --recursive") {
		t.Error("usage does not mention -R")
	}
}
