// SPDX-License-Identifier: MPL-2.0

package builtin

import "context"

// catCommand prints files.
type catCommand struct {
	baseCommand
}

func init() {
	RegisterDefault(newCatCommand())
}

func newCatCommand() *catCommand {
	return &catCommand{
		baseCommand: baseCommand{
			name: "cat",
			usage: `Usage: cat FILE...
Print the content of each FILE.`,
		},
	}
}

// Run executes the cat command. A failing file is reported and the
// remaining files are still printed.
func (c *catCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	opts.Positionals(1, -1)
	pos, err := opts.Parse()
	if err != nil {
		return err
	}

	for _, name := range pos {
		text, err := readText(env, name)
		if err != nil {
			env.Errorf(args.Name(), "%s: %v", name, err)
			continue
		}
		printText(env, text)
	}
	return nil
}
