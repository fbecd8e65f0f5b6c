// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/invowk/vshell/internal/shell"
)

const (
	// StateCreated indicates the server has been created but not started.
	StateCreated ServerState = iota
	// StateStarting indicates the server is in the process of starting.
	StateStarting
	// StateRunning indicates the server is running and accepting connections.
	StateRunning
	// StateStopping indicates the server is shutting down.
	StateStopping
	// StateStopped indicates the server has stopped (terminal state).
	StateStopped
	// StateFailed indicates the server failed to start or serve (terminal state).
	StateFailed
)

var (
	// ErrInvalidHostAddress is returned for an empty or whitespace-only host.
	ErrInvalidHostAddress = errors.New("invalid host address")
	// ErrInvalidListenPort is returned for ports outside 0-65535.
	ErrInvalidListenPort = errors.New("invalid listen port")
	// ErrInvalidTimeout is returned for non-positive startup or shutdown timeouts.
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidSSHConfig is the sentinel error wrapped by InvalidSSHConfigError.
	ErrInvalidSSHConfig = errors.New("invalid SSH server config")
)

type (
	// ServerState represents the lifecycle state of the server.
	ServerState int32

	// Config holds immutable configuration for the SSH server.
	Config struct {
		// Host is the address to bind to (default: 127.0.0.1)
		Host string
		// Port is the port to listen on (0 = auto-select)
		Port int
		// HostKeyPath is where the host key is stored; it is generated when
		// missing. Empty uses an ephemeral key.
		HostKeyPath string
		// Password enables password authentication. Empty accepts every client.
		Password string
		// Root is mounted as the starting volume of every session.
		Root string
		// Session is the template for each connection's shell. History and
		// User are always per connection.
		Session shell.Options
		// Profile is the color profile used for terminal sessions.
		Profile termenv.Profile
		// StartupTimeout is the max time to wait for the listener (default: 5s)
		StartupTimeout time.Duration
		// ShutdownTimeout is the timeout for graceful shutdown (default: 10s)
		ShutdownTimeout time.Duration
	}

	// InvalidSSHConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidSSHConfig for errors.Is() compatibility.
	InvalidSSHConfigError struct {
		FieldErrors []error
	}
)

// String returns a human-readable representation of the server state.
func (s ServerState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Profile:         termenv.ANSI256,
		StartupTimeout:  5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Addr returns the configured listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate reports every invalid field of c.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, fmt.Errorf("%w %q: must be non-empty", ErrInvalidHostAddress, c.Host))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w %d: must be 0-65535", ErrInvalidListenPort, c.Port))
	}
	if c.StartupTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: startup timeout %v", ErrInvalidTimeout, c.StartupTimeout))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: shutdown timeout %v", ErrInvalidTimeout, c.ShutdownTimeout))
	}
	if len(errs) > 0 {
		return &InvalidSSHConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidSSHConfigError.
func (e *InvalidSSHConfigError) Error() string {
	return fmt.Sprintf("invalid SSH server config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidSSHConfig for errors.Is() compatibility.
func (e *InvalidSSHConfigError) Unwrap() error { return ErrInvalidSSHConfig }
