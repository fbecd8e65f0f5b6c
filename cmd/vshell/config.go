// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/invowk/vshell/internal/config"
)

// newConfigCommand creates the `vshell config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vshell configuration",
		Long: `Manage vshell configuration.

Configuration is stored in:
  - Linux: ~/.config/vshell/config.cue
  - macOS: ~/Library/Application Support/vshell/config.cue
  - Windows: %APPDATA%\vshell\config.cue

Every key can be overridden with a VSHELL_ environment variable, for
example VSHELL_SSH_PORT=2222.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.FilePath(app.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, created, err := config.CreateDefaultConfig(app.loadOptions())
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	var asTOML bool
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return err
			}
			if !asTOML {
				fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
				return nil
			}
			out, err := config.ToTOML(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	dumpCmd.Flags().BoolVar(&asTOML, "toml", false, "output TOML instead of CUE")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, w io.Writer) error {
	cfg, path, err := app.Config.Load(ctx, app.loadOptions())
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	root := cfg.Root
	if root == "" {
		root = "(working directory)"
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("root"), valueStyle.Render(root))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("shell"))
	fmt.Fprintf(w, "  glob: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Shell.Glob)))
	historyFile := cfg.Shell.HistoryFile
	if historyFile == "" {
		historyFile = "(default)"
	}
	fmt.Fprintf(w, "  history_file: %s\n", valueStyle.Render(historyFile))
	fmt.Fprintf(w, "  help_style: %s\n", valueStyle.Render(cfg.Shell.HelpStyle))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ssh"))
	fmt.Fprintf(w, "  address: %s\n", valueStyle.Render(cfg.SSH.Address()))
	password := SubtitleStyle.Render("(none)")
	if cfg.SSH.Password != "" {
		password = valueStyle.Render("(set)")
	}
	fmt.Fprintf(w, "  password: %s\n", password)

	return nil
}
