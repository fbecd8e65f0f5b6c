// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"io"
	"maps"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/invowk/vshell/internal/datetime"
	"github.com/invowk/vshell/internal/history"
	"github.com/invowk/vshell/internal/surface"
	"github.com/invowk/vshell/internal/testutil"
	"github.com/invowk/vshell/internal/vfs"
)

type testEnv struct {
	*Env
	out     *surface.Buffer
	clock   *testutil.FakeClock
	backend afero.Fs
}

// newTestEnv mounts tree (rooted at /srv) and returns an Env whose clock
// starts at testutil.ReferenceTime in UTC.
func newTestEnv(t *testing.T, tree map[string]string) *testEnv {
	t.Helper()
	tree = maps.Clone(tree)
	if tree == nil {
		tree = map[string]string{}
	}
	tree["/srv/"] = ""

	clock := testutil.NewFakeClock(time.Time{})
	backend := testutil.MemFS(t, tree)
	fs := vfs.New(backend, vfs.WithClock(clock.Now))
	if err := fs.Bind("/srv"); err != nil {
		t.Fatalf("Bind(/srv) error: %v", err)
	}
	out := surface.NewBuffer()
	return &testEnv{
		Env: &Env{
			FS:        fs,
			History:   history.New(),
			Surface:   out,
			Parser:    &datetime.Parser{Now: clock.Now, Location: time.UTC},
			Registry:  DefaultRegistry,
			Logger:    log.New(io.Discard),
			Now:       clock.Now,
			Location:  time.UTC,
			HelpStyle: PlainHelpStyle,
		},
		out:     out,
		clock:   clock,
		backend: backend,
	}
}

// run splits line on whitespace and runs the named command.
func (e *testEnv) run(t *testing.T, line string) error {
	t.Helper()
	fields := strings.Fields(line)
	cmd, ok := e.Registry.Lookup(fields[0])
	if !ok {
		t.Fatalf("command %q not registered", fields[0])
	}
	return cmd.Run(context.Background(), e.Env, NewArgs(fields[0], fields[1:]))
}

// mustRun runs line and fails the test on a returned error.
func (e *testEnv) mustRun(t *testing.T, line string) {
	t.Helper()
	if err := e.run(t, line); err != nil {
		t.Fatalf("%s: unexpected error: %v", line, err)
	}
}

// output returns everything printed so far and clears the buffer.
func (e *testEnv) output() string {
	s := e.out.Output()
	e.out.Reset()
	return s
}

func (e *testEnv) read(t *testing.T, expr string) string {
	t.Helper()
	n, err := e.FS.Lookup(expr)
	if err != nil {
		t.Fatalf("Lookup(%q) error: %v", expr, err)
	}
	data, err := n.ReadBytes()
	if err != nil {
		t.Fatalf("ReadBytes(%q) error: %v", expr, err)
	}
	return string(data)
}
