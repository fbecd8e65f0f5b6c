// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"

	"github.com/invowk/vshell/internal/surface"
	"github.com/invowk/vshell/internal/vfs"
)

// lsCommand lists a directory.
type lsCommand struct {
	baseCommand
}

func init() {
	RegisterDefault(newLsCommand())
}

func newLsCommand() *lsCommand {
	return &lsCommand{
		baseCommand: baseCommand{
			name:    "ls",
			aliases: []string{"dir"},
			usage: `Usage: ls [DIR]
List the entries of DIR (the current directory by default).
Directories are highlighted.`,
		},
	}
}

// Run executes the ls command.
func (c *lsCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	opts.Positionals(0, 1)
	pos, err := opts.Parse()
	if err != nil {
		return err
	}

	dir := env.FS.Cwd()
	if len(pos) == 1 {
		if dir, err = env.FS.Lookup(pos[0]); err != nil {
			return fmt.Errorf("cannot access '%s': %w", pos[0], err)
		}
		if !dir.IsDir() {
			return fmt.Errorf("cannot access '%s': %w", pos[0], vfs.ErrNotADirectory)
		}
	}

	children, err := dir.Children()
	if err != nil {
		return fmt.Errorf("cannot open directory '%s': %w", dir.Path(), err)
	}
	for _, child := range children {
		if child.IsDir() {
			env.Println(child.Name(), surface.Blue)
			continue
		}
		env.Println(child.Name())
	}
	return nil
}
