// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/invowk/vshell/internal/builtin"
	"github.com/invowk/vshell/internal/datetime"
	"github.com/invowk/vshell/internal/history"
	"github.com/invowk/vshell/internal/surface"
	"github.com/invowk/vshell/internal/vfs"
)

// ExitCommand ends the REPL.
const ExitCommand = "exit"

var (
	// ErrUnknownCommand is returned by Dispatch for names not in the registry.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrCommandPanicked wraps a recovered command panic.
	ErrCommandPanicked = errors.New("command panicked")
)

// helpSpellings ask for a command's usage wherever they appear in the arguments.
var helpSpellings = []string{"/?", "/h", "-h", "--help"}

func isHelpSpelling(arg string) bool {
	return slices.Contains(helpSpellings, arg)
}

type (
	// Options configures a Session. Zero values pick sensible defaults.
	Options struct {
		Registry *builtin.Registry
		History  *history.Store
		Logger   *log.Logger
		Now      func() time.Time
		Location *time.Location
		// Glob enables VFS glob expansion of unquoted words.
		Glob        bool
		HistoryFile string
		HelpStyle   string
		// User is exposed as $USER.
		User string
	}

	// Session is one interactive shell: a filesystem view, its history and
	// the surface it talks through. A Session is driven by a single goroutine.
	Session struct {
		id     string
		env    *builtin.Env
		tok    *Tokenizer
		logger *log.Logger
		user   string
	}
)

// NewSession creates a session over fs that reads and prints through surf.
func NewSession(fs *vfs.FS, surf surface.Surface, opts Options) *Session {
	if opts.Registry == nil {
		opts.Registry = builtin.DefaultRegistry
	}
	if opts.History == nil {
		opts.History = history.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.User == "" {
		opts.User = os.Getenv("USER")
	}

	id := uuid.NewString()
	s := &Session{
		id:     id,
		logger: opts.Logger.With("session", id),
		user:   opts.User,
	}
	s.env = &builtin.Env{
		FS:          fs,
		History:     opts.History,
		Surface:     surf,
		Parser:      &datetime.Parser{Now: opts.Now, Location: opts.Location},
		Registry:    opts.Registry,
		Logger:      s.logger,
		Now:         opts.Now,
		Location:    opts.Location,
		HistoryFile: opts.HistoryFile,
		HelpStyle:   opts.HelpStyle,
	}
	s.tok = &Tokenizer{FS: fs, Glob: opts.Glob, Vars: s.vars}
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Env returns the state commands run against.
func (s *Session) Env() *builtin.Env {
	return s.env
}

func (s *Session) vars() []string {
	cwd := s.env.FS.Cwd()
	return []string{
		"PWD=" + cwd.Path(),
		"HOME=" + cwd.Root().Path(),
		"USER=" + s.user,
	}
}

// Prompt returns the REPL prompt: the current directory and a marker.
func (s *Session) Prompt() []surface.Span {
	return []surface.Span{
		{Text: s.env.FS.Cwd().Path(), Tag: surface.Green},
		{Text: "> ", Tag: surface.Blue},
	}
}

// Dispatch runs one command line. Every failure, including a panicking
// command, is printed and returned; the session stays usable either way.
func (s *Session) Dispatch(ctx context.Context, line string) (err error) {
	fields, err := s.tok.Split(line)
	if err != nil {
		s.env.Println(err.Error(), surface.Red)
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	name, rest := fields[0], fields[1:]
	cmd, ok := s.env.Registry.Lookup(name)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownCommand, name)
		s.env.Println(fmt.Sprintf("Unknown command: %q", name), surface.Red)
		return err
	}
	if slices.ContainsFunc(rest, isHelpSpelling) {
		s.env.Println(builtin.HelpText(cmd))
		return nil
	}

	s.logger.Debug("dispatching command", "command", name, "args", len(rest))
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCommandPanicked, r)
			s.logger.Error("command panicked", "command", name, "panic", r)
			s.env.Println(name+": "+err.Error(), surface.Red)
		}
	}()

	if err := cmd.Run(ctx, s.env, builtin.NewArgs(name, rest)); err != nil {
		s.logger.Debug("command failed", "command", name, "error", err)
		s.report(name, err)
		return err
	}
	return nil
}

func (s *Session) report(name string, err error) {
	s.env.Println(name+": "+err.Error(), surface.Red)
	var ue *builtin.UsageError
	if errors.As(err, &ue) {
		s.env.Println(fmt.Sprintf("Try '%s --help' for more information.", name))
	}
}

// Run reads and dispatches lines until exit, end of input or ctx is done.
// Each non-blank line is recorded in the history before it runs.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Debug("session started")
	defer s.logger.Debug("session ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.env.Surface.ReadLine(s.Prompt()...)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ExitCommand:
			return nil
		}
		s.env.History.Add(line)
		_ = s.Dispatch(ctx, line)
	}
}
