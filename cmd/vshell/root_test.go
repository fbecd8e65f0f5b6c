// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/vshell/internal/builtin"
	"github.com/invowk/vshell/internal/config"
	"github.com/invowk/vshell/internal/issue"
)

type staticProvider struct {
	cfg *config.Config
	err error
}

func (p staticProvider) Load(context.Context, config.LoadOptions) (*config.Config, string, error) {
	if p.err != nil {
		return nil, "", p.err
	}
	cfg := *p.cfg
	return &cfg, "", nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.UI.ColorScheme = config.ColorSchemeNone
	cfg.Shell.HelpStyle = builtin.PlainHelpStyle
	return cfg
}

// runCLI runs the CLI against a static configuration.
func runCLI(t *testing.T, cfg *config.Config, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(context.Background(), args, Dependencies{
		Config: staticProvider{cfg: cfg},
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errOut,
	})
	return code, out.String(), errOut.String()
}

func TestRun_VersionCommand(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, testConfig(), "", "version")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if want := "vshell dev (built from source)\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_ShellOverStdin(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, testConfig(), "cat notes.txt\ntouch new.txt\nexit\n", root)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr %q)", code, errOut)
	}
	if !strings.Contains(out, "hello\n") {
		t.Errorf("output = %q, want the file contents", out)
	}
	if !strings.Contains(out, "> ") {
		t.Errorf("output = %q, want a prompt", out)
	}
	if _, err := os.Stat(filepath.Join(root, "new.txt")); !os.IsNotExist(err) {
		t.Errorf("touch wrote through to disk: stat error = %v", err)
	}
}

func TestRun_ScriptThenPrompt(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(t.TempDir(), "setup.vsh")
	if err := os.WriteFile(script, []byte("cd docs\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, testConfig(), "pwd\n", root, script)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr %q)", code, errOut)
	}
	want := filepath.ToSlash(filepath.Join(root, "docs")) + "/\n"
	if !strings.Contains(out, want) {
		t.Errorf("output = %q, want it to contain %q", out, want)
	}
}

func TestRun_MissingRoot(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope")
	code, _, errOut := runCLI(t, testConfig(), "", missing)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, "failed to mount root directory") {
		t.Errorf("stderr = %q, want the mount failure", errOut)
	}
}

func TestRun_MissingScript(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, testConfig(), "", t.TempDir(), filepath.Join(t.TempDir(), "none.vsh"))
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, "failed to read script") {
		t.Errorf("stderr = %q, want the script failure", errOut)
	}
}

func TestRun_TooManyArgs(t *testing.T) {
	t.Parallel()

	if code, _, _ := runCLI(t, testConfig(), "", "a", "b", "c"); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRun_ConfigLoadError(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	loadErr := issue.NewErrorContext().
		WithOperation("load configuration").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(errors.New("boom")).
		BuildError()
	code := Run(context.Background(), []string{t.TempDir()}, Dependencies{
		Config: staticProvider{err: loadErr},
		Stdin:  strings.NewReader(""),
		Stdout: &out,
		Stderr: &errOut,
	})
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "failed to load configuration") {
		t.Errorf("stderr = %q, want the config failure", errOut.String())
	}
}

func TestRun_ConfigDump(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.SSH.Port = 2222

	code, out, _ := runCLI(t, cfg, "", "config", "dump")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out, "port: 2222") {
		t.Errorf("CUE dump = %q, want the port", out)
	}

	code, out, _ = runCLI(t, cfg, "", "config", "dump", "--toml")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out, "port = 2222") || !strings.Contains(out, "[ssh]") {
		t.Errorf("TOML dump = %q, want the ssh table", out)
	}
}

func TestRun_ConfigShow(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, testConfig(), "", "config", "show")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	for _, want := range []string{"Current Configuration", "(using defaults)", "localhost:23234", "glob: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output missing %q:\n%s", want, out)
		}
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{"without cause", &ExitError{Code: 3}, "exit status 3"},
		{"with cause", &ExitError{Code: 1, Err: cause}, "cause"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
	if !errors.Is(&ExitError{Code: 1, Err: cause}, cause) {
		t.Error("ExitError should unwrap to its cause")
	}
}

func TestHelpStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme config.ColorScheme
		style  string
		want   string
	}{
		{config.ColorSchemeAuto, config.DefaultHelpStyle, config.DefaultHelpStyle},
		{config.ColorSchemeNone, config.DefaultHelpStyle, builtin.PlainHelpStyle},
		{config.ColorSchemeDark, config.DefaultHelpStyle, "dark"},
		{config.ColorSchemeLight, config.DefaultHelpStyle, "light"},
		{config.ColorSchemeNone, "dracula", "dracula"},
	}
	for _, tt := range tests {
		cfg := config.DefaultConfig()
		cfg.UI.ColorScheme = tt.scheme
		cfg.Shell.HelpStyle = tt.style
		if got := helpStyle(cfg); got != tt.want {
			t.Errorf("helpStyle(%s, %s) = %q, want %q", tt.scheme, tt.style, got, tt.want)
		}
	}
}
