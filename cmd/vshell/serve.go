// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/invowk/vshell/internal/config"
	"github.com/invowk/vshell/internal/issue"
	"github.com/invowk/vshell/internal/shell"
	"github.com/invowk/vshell/internal/sshserver"
)

type serveFlags struct {
	host     string
	port     int
	hostKey  string
	password string
}

// newServeCommand creates `vshell serve`, which hosts sessions over SSH.
func newServeCommand(app *App) *cobra.Command {
	var flags serveFlags
	serveCmd := &cobra.Command{
		Use:   "serve [ROOT]",
		Short: "Serve vshell sessions over SSH",
		Long: `Serve vshell sessions over SSH.

Every connection gets its own virtual view of ROOT with its own history;
changes made in one session are never visible to another. A command given
on the ssh command line runs once and sets the exit status.

` + SubtitleStyle.Render("Examples:") + `
  vshell serve                       Listen on localhost:23234
  vshell serve ~/site --port 2222    Serve ~/site on port 2222
  ssh -p 23234 localhost ls          Run one command remotely`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.serve(cmd, args, flags)
		},
	}

	serveCmd.Flags().StringVar(&flags.host, "host", "", "address to listen on (default from config)")
	serveCmd.Flags().IntVar(&flags.port, "port", 0, "port to listen on (default from config)")
	serveCmd.Flags().StringVar(&flags.hostKey, "host-key", "", "path of the SSH host key, created when missing")
	serveCmd.Flags().StringVar(&flags.password, "password", "", "require this password from clients")
	return serveCmd
}

func (a *App) serve(cmd *cobra.Command, args []string, flags serveFlags) error {
	ctx := cmd.Context()
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	logger := a.newLogger(cfg)

	root := cfg.Root
	if len(args) > 0 {
		root = args[0]
	}
	// Fail fast on a bad root rather than on the first connection.
	if _, err := shell.Mount(a.Backend, root); err != nil {
		return err
	}

	srvCfg := sshserver.DefaultConfig()
	srvCfg.Host = cfg.SSH.Host
	srvCfg.Port = cfg.SSH.Port
	srvCfg.HostKeyPath = cfg.SSH.HostKeyPath
	srvCfg.Password = cfg.SSH.Password
	if cmd.Flags().Changed("host") {
		srvCfg.Host = flags.host
	}
	if cmd.Flags().Changed("port") {
		srvCfg.Port = flags.port
	}
	if cmd.Flags().Changed("host-key") {
		srvCfg.HostKeyPath = flags.hostKey
	}
	if cmd.Flags().Changed("password") {
		srvCfg.Password = flags.password
	}
	srvCfg.Root = root
	srvCfg.Session = shell.Options{
		Glob:        cfg.Shell.Glob,
		HistoryFile: cfg.Shell.HistoryFile,
		HelpStyle:   helpStyle(cfg),
	}
	if cfg.UI.ColorScheme == config.ColorSchemeNone {
		srvCfg.Profile = termenv.Ascii
	}

	srv, err := sshserver.New(srvCfg, a.Backend, logger)
	if err != nil {
		return serveError(srvCfg.Addr(), err)
	}
	if err := srv.Start(ctx); err != nil {
		return serveError(srvCfg.Addr(), err)
	}
	defer func() {
		if stopErr := srv.Stop(); stopErr != nil {
			logger.Warn("failed to stop ssh server", "error", stopErr)
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "%s Listening on %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(srv.Address()))

	select {
	case <-ctx.Done():
		logger.Info("shutting down", "active_sessions", srv.ActiveSessions())
		return nil
	case err, ok := <-srv.Err():
		if !ok || err == nil {
			return nil
		}
		return serveError(srv.Address(), err)
	}
}

func serveError(addr string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("serve over SSH").
		WithResource(addr).
		WithIssue(issue.ServeFailedId)
	if errors.Is(err, sshserver.ErrInvalidSSHConfig) {
		ctx = ctx.WithSuggestion("Check the --host and --port flags and the ssh section of the config")
	} else {
		ctx = ctx.WithSuggestion("Pick a free port with --port")
	}
	return ctx.Wrap(err).BuildError()
}
