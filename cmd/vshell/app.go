// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"

	"github.com/invowk/vshell/internal/builtin"
	"github.com/invowk/vshell/internal/config"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference instead of reading package globals,
	// so several invocations can run in one process.
	App struct {
		Config  config.Provider
		Backend afero.Fs
		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer

		// Persistent flag values.
		cfgFile string
		verbose bool
		noColor bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  config.Provider
		Backend afero.Fs
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
	}
)

// NewApp creates an App, filling unset dependencies with the real config
// provider, the OS filesystem and the process streams.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:  deps.Config,
		Backend: deps.Backend,
		stdin:   deps.Stdin,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Backend == nil {
		app.Backend = afero.NewOsFs()
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.cfgFile}
}

// loadConfig loads the configuration and folds the persistent flags into it.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, _, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}
	if a.verbose {
		cfg.UI.Verbose = true
	}
	if a.noColor {
		cfg.UI.ColorScheme = config.ColorSchemeNone
	}
	return cfg, nil
}

// newLogger returns the process logger: warnings only, or everything with
// verbose output.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	level := log.WarnLevel
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "vshell", Level: level})
	if cfg.UI.ColorScheme == config.ColorSchemeNone {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

// colorProfile picks the profile for output written to w.
func colorProfile(cfg *config.Config, w io.Writer) termenv.Profile {
	if cfg.UI.ColorScheme == config.ColorSchemeNone {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// helpStyle maps the configured help style onto a glamour style. The
// default "auto" follows an explicit color scheme.
func helpStyle(cfg *config.Config) string {
	if cfg.Shell.HelpStyle != config.DefaultHelpStyle {
		return cfg.Shell.HelpStyle
	}
	switch cfg.UI.ColorScheme {
	case config.ColorSchemeNone:
		return builtin.PlainHelpStyle
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return config.DefaultHelpStyle
	}
}
