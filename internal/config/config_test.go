// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/vshell/internal/issue"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("color scheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if !cfg.Shell.Glob {
		t.Error("expected glob expansion to be enabled by default")
	}
	if cfg.Shell.HelpStyle != DefaultHelpStyle {
		t.Errorf("help style = %q, want %q", cfg.Shell.HelpStyle, DefaultHelpStyle)
	}
	if got, want := cfg.SSH.Address(), "localhost:23234"; got != want {
		t.Errorf("ssh address = %q, want %q", got, want)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config is invalid: %v", errs)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults", *cfg)
	}
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
root: "/data"
ui: color_scheme: "none"
shell: {
	glob: false
	history_file: "/.history"
}
ssh: port: 2222
`)

	cfg, path, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if want := filepath.Join(dir, "config.cue"); path != want {
		t.Errorf("resolved path = %q, want %q", path, want)
	}

	want := DefaultConfig()
	want.Root = "/data"
	want.UI.ColorScheme = ColorSchemeNone
	want.Shell.Glob = false
	want.Shell.HistoryFile = "/.history"
	want.SSH.Port = 2222
	if *cfg != *want {
		t.Errorf("Load() = %+v, want %+v", *cfg, *want)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "ui: {"},
		{"bad color scheme", `ui: color_scheme: "purple"`},
		{"port out of range", "ssh: port: 70000"},
		{"unknown key", `colour: "dark"`},
		{"wrong type", `shell: glob: "yes"`},
		{"empty help style", `shell: help_style: ""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeConfig(t, tt.content)
			_, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("Load() returned nil error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("Load() error = %T, want *issue.ActionableError", err)
			}
			if ae.Issue != issue.ConfigLoadFailedId {
				t.Errorf("issue = %v, want ConfigLoadFailedId", ae.Issue)
			}
		})
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("Load() error = %v, want config file not found", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

//nolint:paralleltest // t.Setenv
func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("VSHELL_SSH_PORT", "4000")
	t.Setenv("VSHELL_UI_VERBOSE", "true")

	dir := writeConfig(t, "ssh: port: 2222")
	cfg, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SSH.Port != 4000 {
		t.Errorf("ssh.port = %d, want 4000", cfg.SSH.Port)
	}
	if !cfg.UI.Verbose {
		t.Error("ui.verbose = false, want true")
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.Root = "/srv"
	want.UI.Verbose = true
	want.Shell.HistoryFile = "/h"
	want.Shell.HelpStyle = "dracula"
	want.SSH.HostKeyPath = "/keys/host_ed25519"
	want.SSH.Password = "secret"

	dir := writeConfig(t, GenerateCUE(want))
	got, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load(GenerateCUE()) error: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", *got, *want)
	}
}

func TestToTOML(t *testing.T) {
	t.Parallel()

	out, err := ToTOML(DefaultConfig())
	if err != nil {
		t.Fatalf("ToTOML() error: %v", err)
	}
	for _, want := range []string{"[ui]", "[shell]", "[ssh]", "port = 23234", "glob = true"} {
		if !strings.Contains(out, want) {
			t.Errorf("ToTOML() output missing %q:\n%s", want, out)
		}
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	opts := LoadOptions{ConfigDirPath: filepath.Join(t.TempDir(), "nested")}

	path, created, err := CreateDefaultConfig(opts)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}
	if !created {
		t.Error("first call did not create the file")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	if _, created, err := CreateDefaultConfig(opts); err != nil || created {
		t.Errorf("second call created = %v, err = %v; want existing file kept", created, err)
	}

	cfg, _, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() of generated file error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("generated config = %+v, want defaults", *cfg)
	}
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	if got, _ := FilePath(LoadOptions{ConfigFilePath: "/etc/vshell.cue"}); got != "/etc/vshell.cue" {
		t.Errorf("FilePath(explicit) = %q", got)
	}
	if got, _ := FilePath(LoadOptions{ConfigDirPath: "/cfg"}); got != filepath.Join("/cfg", "config.cue") {
		t.Errorf("FilePath(dir) = %q", got)
	}
}
