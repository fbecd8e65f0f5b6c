// SPDX-License-Identifier: MPL-2.0

package builtin

import "context"

type (
	// Command is one simulated utility.
	Command interface {
		// Name returns the primary command name (e.g., "ls", "cp").
		Name() string

		// Aliases returns additional names the command answers to.
		Aliases() []string

		// Usage returns the help text printed for --help and friends.
		Usage() string

		// Run executes the command against the session state in env.
		// Per-item failures are reported through env and do not end the run;
		// a returned error aborts the command and is printed by the dispatcher.
		Run(ctx context.Context, env *Env, args *Args) error
	}

	// baseCommand carries the static parts of a Command.
	baseCommand struct {
		name    string
		aliases []string
		usage   string
	}
)

// Name returns the command name.
func (c *baseCommand) Name() string {
	return c.name
}

// Aliases returns the alternative names.
func (c *baseCommand) Aliases() []string {
	return c.aliases
}

// Usage returns the help text.
func (c *baseCommand) Usage() string {
	return c.usage
}

// AllNames returns the primary name followed by the aliases.
func AllNames(cmd Command) []string {
	return append([]string{cmd.Name()}, cmd.Aliases()...)
}
