// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// PlainHelpStyle disables Markdown rendering of the help listing.
const PlainHelpStyle = "plain"

type (
	// helpCommand lists commands or shows one command's usage.
	helpCommand struct {
		baseCommand
	}

	// clearCommand clears the screen.
	clearCommand struct {
		baseCommand
	}
)

func init() {
	RegisterDefault(newHelpCommand())
	RegisterDefault(newClearCommand())
}

func newHelpCommand() *helpCommand {
	return &helpCommand{
		baseCommand: baseCommand{
			name: "help",
			usage: `Usage: help [COMMAND]
List the available commands, or show the usage of COMMAND.
Any command also accepts --help, -h, /h and /? in place of its arguments.`,
		},
	}
}

func newClearCommand() *clearCommand {
	return &clearCommand{
		baseCommand: baseCommand{
			name:    "clear",
			aliases: []string{"cls"},
			usage:   "Usage: clear\nClear the screen.",
		},
	}
}

// Run executes the help command.
func (c *helpCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	opts.Positionals(0, 1)
	pos, err := opts.Parse()
	if err != nil {
		return err
	}

	reg := env.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	if len(pos) == 1 {
		cmd, ok := reg.Lookup(pos[0])
		if !ok {
			return fmt.Errorf("no help topics match '%s'", pos[0])
		}
		env.Println(HelpText(cmd))
		return nil
	}

	md := listing(reg)
	if env.HelpStyle == "" || env.HelpStyle == PlainHelpStyle {
		env.Println(strings.TrimSuffix(md, "\n"))
		return nil
	}
	out, err := glamour.Render(md, env.HelpStyle)
	if err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	env.Println(strings.Trim(out, "\n"))
	return nil
}

// listing builds the Markdown command table.
func listing(reg *Registry) string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	b.WriteString("| Command | Aliases | Description |\n")
	b.WriteString("|---|---|---|\n")
	for _, cmd := range reg.Commands() {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", cmd.Name(), strings.Join(cmd.Aliases(), ", "), summary(cmd))
	}
	b.WriteString("\nRun `help COMMAND` or `COMMAND --help` for details.\n")
	return b.String()
}

// summary is the first line of the usage after the synopsis.
func summary(cmd Command) string {
	lines := strings.Split(cmd.Usage(), "\n")
	for _, l := range lines {
		if l == "" || strings.HasPrefix(l, "Usage:") || strings.HasPrefix(strings.TrimSpace(l), "or:") {
			continue
		}
		return strings.TrimSpace(l)
	}
	return ""
}

// Run executes the clear command.
func (c *clearCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	opts.Positionals(0, 0)
	if _, err := opts.Parse(); err != nil {
		return err
	}
	env.Surface.Clear()
	return nil
}
