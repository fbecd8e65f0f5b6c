// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"
	// ColorSchemeNone disables colors entirely.
	ColorSchemeNone ColorScheme = "none"

	// DefaultSSHHost is the address serve listens on.
	DefaultSSHHost = "localhost"
	// DefaultSSHPort is the port serve listens on.
	DefaultSSHPort = 23234
	// DefaultHelpStyle picks a dark or light glamour style from the terminal.
	DefaultHelpStyle = "auto"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPort is returned for ports outside 1-65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidHelpStyle is returned for an empty or whitespace-only help style.
	ErrInvalidHelpStyle = errors.New("invalid help style")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidPortError is returned when an SSH port is out of range.
	InvalidPortError struct {
		Value int
	}

	// InvalidConfigError collects the field-level validation errors of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Root is the directory mounted at startup; empty means the working directory.
		Root string `json:"root" mapstructure:"root" toml:"root"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
		// Shell configures the REPL
		Shell ShellConfig `json:"shell" mapstructure:"shell" toml:"shell"`
		// SSH configures the serve subcommand
		SSH SSHConfig `json:"ssh" mapstructure:"ssh" toml:"ssh"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}

	// ShellConfig configures the interactive session.
	ShellConfig struct {
		// Glob expands unquoted glob words against the virtual tree.
		Glob bool `json:"glob" mapstructure:"glob" toml:"glob"`
		// HistoryFile overrides the default history file; empty keeps the default.
		HistoryFile string `json:"history_file" mapstructure:"history_file" toml:"history_file"`
		// HelpStyle is the glamour style name for help, or "plain".
		HelpStyle string `json:"help_style" mapstructure:"help_style" toml:"help_style"`
	}

	// SSHConfig configures the SSH server started by serve.
	SSHConfig struct {
		Host string `json:"host" mapstructure:"host" toml:"host"`
		Port int    `json:"port" mapstructure:"port" toml:"port"`
		// HostKeyPath is created on first start when missing.
		HostKeyPath string `json:"host_key_path" mapstructure:"host_key_path" toml:"host_key_path"`
		// Password enables password authentication when non-empty.
		Password string `json:"password" mapstructure:"password" toml:"password"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Shell: ShellConfig{
			Glob:      true,
			HelpStyle: DefaultHelpStyle,
		},
		SSH: SSHConfig{
			Host: DefaultSSHHost,
			Port: DefaultSSHPort,
		},
	}
}

// Address returns host:port for the SSH listener.
func (c SSHConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if strings.TrimSpace(c.Shell.HelpStyle) == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidHelpStyle, c.Shell.HelpStyle))
	}
	if c.SSH.Port < 1 || c.SSH.Port > 65535 {
		errs = append(errs, &InvalidPortError{Value: c.SSH.Port})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light, none)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface for InvalidPortError.
func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid port %d (valid: 1-65535)", e.Value)
}

// Unwrap returns ErrInvalidPort for errors.Is() compatibility.
func (e *InvalidPortError) Unwrap() error { return ErrInvalidPort }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight, ColorSchemeNone:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}
