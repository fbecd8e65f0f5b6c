// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"os/user"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/invowk/vshell/internal/config"
	"github.com/invowk/vshell/internal/shell"
	"github.com/invowk/vshell/internal/surface"
)

// runShell mounts the requested root and runs the REPL on the process
// streams. args holds the optional ROOT and SCRIPT positionals.
func (a *App) runShell(ctx context.Context, args []string) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	logger := a.newLogger(cfg)

	root := cfg.Root
	if len(args) > 0 {
		root = args[0]
	}
	fs, err := shell.Mount(a.Backend, root)
	if err != nil {
		return err
	}

	var script []string
	if len(args) > 1 {
		if script, err = shell.LoadScript(a.Backend, args[1]); err != nil {
			return err
		}
		logger.Debug("loaded script", "path", args[1], "lines", len(script))
	}

	surf, restore, err := a.newSurface(cfg)
	if err != nil {
		return err
	}
	defer restore()
	if script != nil {
		surf = surface.NewScripted(surf, script)
	}

	session := shell.NewSession(fs, surf, shell.Options{
		Logger:      logger,
		Glob:        cfg.Shell.Glob,
		HistoryFile: cfg.Shell.HistoryFile,
		HelpStyle:   helpStyle(cfg),
		User:        currentUser(),
	})
	logger.Debug("mounted root", "session", session.ID(), "root", root)
	return session.Run(ctx)
}

// newSurface returns a line-editing terminal when both stdin and stdout are
// TTYs, and a plain line stream otherwise. restore undoes raw mode.
func (a *App) newSurface(cfg *config.Config) (surface.Surface, func(), error) {
	in, inOK := a.stdin.(*os.File)
	out, outOK := a.stdout.(*os.File)
	if !inOK || !outOK || !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		profile := termenv.Ascii
		if outOK {
			profile = colorProfile(cfg, out)
		}
		return surface.NewStream(a.stdin, a.stdout, profile), func() {}, nil
	}

	state, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, nil, err
	}
	t := surface.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, colorProfile(cfg, out))
	if w, h, err := term.GetSize(int(out.Fd())); err == nil {
		_ = t.SetSize(w, h)
	}
	return t, func() { _ = term.Restore(int(in.Fd()), state) }, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
