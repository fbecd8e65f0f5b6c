// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"context"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"

	"github.com/invowk/vshell/internal/shell"
	"github.com/invowk/vshell/internal/surface"
)

// Server serves one shell session per SSH connection. Every session mounts
// its own view of Config.Root, so overlays and history never leak between
// clients. A Server instance is single-use: once stopped or failed, create
// a new instance.
type Server struct {
	cfg     Config
	backend afero.Fs
	logger  *log.Logger

	state atomic.Int32

	// Initialized during Start() - protected by mu for writes
	mu       sync.Mutex
	srv      *ssh.Server
	listener net.Listener
	addr     string
	lastErr  error

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startedCh chan struct{}
	errCh     chan error

	active atomic.Int64
}

// New creates a server that mounts cfg.Root from backend for every session.
// A nil logger logs to stderr.
func New(cfg Config, backend afero.Fs, logger *log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "ssh-server"})
	} else {
		logger = logger.WithPrefix("ssh-server")
	}

	s := &Server{
		cfg:       cfg,
		backend:   backend,
		logger:    logger,
		startedCh: make(chan struct{}),
		errCh:     make(chan error, 1),
	}
	s.state.Store(int32(StateCreated))
	return s, nil
}

// ActiveSessions returns the number of connected shells.
func (s *Server) ActiveSessions() int {
	return int(s.active.Load())
}

// newSSHServer builds the wish server with authentication and the shell
// middleware.
func (s *Server) newSSHServer(addr string) (*ssh.Server, error) {
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(s.shellMiddleware()),
	}
	if s.cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(s.cfg.HostKeyPath))
	}
	opts = append(opts, s.authOptions()...)
	return wish.NewServer(opts...)
}

// shellMiddleware runs a vshell session on every SSH session.
func (s *Server) shellMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			s.handle(sess)
			next(sess)
		}
	}
}

// handle runs one connection. A command given on the ssh command line is
// dispatched once and the exit status reports whether it failed; otherwise
// the REPL runs until exit or disconnect.
func (s *Server) handle(sess ssh.Session) {
	s.active.Add(1)
	defer s.active.Add(-1)

	fs, err := shell.Mount(s.backend, s.cfg.Root)
	if err != nil {
		s.logger.Error("mount failed", "root", s.cfg.Root, "error", err)
		wish.Fatalln(sess, err)
		return
	}

	opts := s.cfg.Session
	opts.History = nil
	opts.Logger = s.logger
	opts.User = sess.User()

	ptyReq, winCh, isPty := sess.Pty()
	var surf surface.Surface
	if isPty {
		t := surface.NewTerminal(sess, s.cfg.Profile)
		_ = t.SetSize(ptyReq.Window.Width, ptyReq.Window.Height)
		go func() {
			for win := range winCh {
				_ = t.SetSize(win.Width, win.Height)
			}
		}()
		surf = t
	} else {
		surf = surface.NewStream(sess, sess, termenv.Ascii)
	}

	session := shell.NewSession(fs, surf, opts)
	s.logger.Info("session started", "session", session.ID(), "user", sess.User(), "remote", sess.RemoteAddr().String(), "pty", isPty)
	defer s.logger.Info("session ended", "session", session.ID())

	// The raw command keeps the client's quoting for the tokenizer.
	if line := strings.TrimSpace(sess.RawCommand()); line != "" {
		if err := session.Dispatch(sess.Context(), line); err != nil {
			_ = sess.Exit(1)
			return
		}
		_ = sess.Exit(0)
		return
	}

	if err := session.Run(sess.Context()); err != nil {
		s.logger.Debug("session aborted", "session", session.ID(), "error", err)
		_ = sess.Exit(1)
		return
	}
	_ = sess.Exit(0)
}
