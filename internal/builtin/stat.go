// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
)

// statLayout renders "YYYY-MM-DD HH:MM:SS.ffffff ±HHMM".
const statLayout = "2006-01-02 15:04:05.000000 -0700"

// statCommand prints file timestamps.
type statCommand struct {
	baseCommand
}

func init() {
	RegisterDefault(newStatCommand())
}

func newStatCommand() *statCommand {
	return &statCommand{
		baseCommand: baseCommand{
			name: "stat",
			usage: `Usage: stat FILE...
Print the name, type, access time and modification time of each FILE.`,
		},
	}
}

// Run executes the stat command.
func (c *statCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	opts.Positionals(1, -1)
	pos, err := opts.Parse()
	if err != nil {
		return err
	}

	loc := env.location()
	for _, name := range pos {
		node, err := env.FS.Lookup(name)
		if err != nil {
			env.Errorf(args.Name(), "cannot stat '%s': %v", name, err)
			continue
		}
		atime, mtime, err := node.Times()
		if err != nil {
			env.Errorf(args.Name(), "cannot stat '%s': %v", name, err)
			continue
		}
		kind := "regular file"
		if node.IsDir() {
			kind = "directory"
		}
		env.Println(fmt.Sprintf("  File: %s\n  Type: %s\nAccess: %s\nModify: %s",
			name, kind, atime.In(loc).Format(statLayout), mtime.In(loc).Format(statLayout)))
	}
	return nil
}
