// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"

	"github.com/invowk/vshell/internal/vfs"
)

type (
	// cdCommand changes or prints the current directory.
	cdCommand struct {
		baseCommand
	}

	// pwdCommand prints the current directory.
	pwdCommand struct {
		baseCommand
	}
)

func init() {
	RegisterDefault(newCdCommand())
	RegisterDefault(newPwdCommand())
}

func newCdCommand() *cdCommand {
	return &cdCommand{
		baseCommand: baseCommand{
			name: "cd",
			usage: `Usage: cd [DIR]
Change the current directory to DIR.
Without DIR, print the current directory.`,
		},
	}
}

func newPwdCommand() *pwdCommand {
	return &pwdCommand{
		baseCommand: baseCommand{
			name:  "pwd",
			usage: "Usage: pwd\nPrint the current directory.",
		},
	}
}

// Run executes the cd command.
func (c *cdCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	opts.Positionals(0, 1)
	pos, err := opts.Parse()
	if err != nil {
		return err
	}
	if len(pos) == 0 {
		env.Println(env.FS.Cwd().Path())
		return nil
	}

	dir, err := env.FS.Lookup(pos[0])
	if err != nil {
		return fmt.Errorf("%s: %w", pos[0], err)
	}
	if !dir.IsDir() {
		return fmt.Errorf("%s: %w", pos[0], vfs.ErrNotADirectory)
	}
	return env.FS.Chdir(dir)
}

// Run executes the pwd command.
func (c *pwdCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	opts.Positionals(0, 0)
	if _, err := opts.Parse(); err != nil {
		return err
	}
	env.Println(env.FS.Cwd().Path())
	return nil
}
