// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invowk/vshell/internal/datetime"
	"github.com/invowk/vshell/internal/vfs"
)

// timeWords are the accepted --time values.
var timeWords = []string{"access", "atime", "use", "modify", "mtime"}

// touchCommand stamps file times, creating missing files.
type touchCommand struct {
	baseCommand
}

func init() {
	RegisterDefault(newTouchCommand())
}

func newTouchCommand() *touchCommand {
	return &touchCommand{
		baseCommand: baseCommand{
			name: "touch",
			usage: `Usage: touch [OPTION]... FILE...
Update the access and modification times of each FILE to the current time.
A FILE that does not exist is created empty, unless -c is supplied.
  -a                     change only the access time
  -c, --no-create        do not create any files
  -d, --date=STRING      parse STRING and use it instead of current time
  -m                     change only the modification time
  -r, --reference=FILE   use this file's modification time instead of current time
  -t STAMP               use [[CC]YY]MMDDhhmm[.ss] instead of current time
      --time=WORD        change the specified time:
                         WORD is access, atime, or use: equivalent to -a
                         WORD is modify or mtime: equivalent to -m
When several time sources are given, -r wins over -d, and -d over -t.`,
		},
	}
}

// Run executes the touch command.
func (c *touchCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	accessOnly := opts.Bool("", "a", "change only the access time")
	modifyOnly := opts.Bool("", "m", "change only the modification time")
	word := opts.Choice("time", "", timeWords, "change the specified time")
	dateStr := opts.String("date", "d", "", "use STRING as the time")
	reference := opts.String("reference", "r", "", "use FILE's modification time")
	stamp := opts.String("", "t", "", "use STAMP as the time")
	noCreate := opts.Bool("no-create", "c", "do not create any files")
	opts.Positionals(1, -1)
	pos, err := opts.Parse()
	if err != nil {
		return err
	}

	when, err := c.resolveTime(env, opts, *reference, *dateStr, *stamp)
	if err != nil {
		return err
	}

	setAccess, setModify := true, true
	switch {
	case opts.Changed("time"):
		switch *word {
		case "access", "atime", "use":
			setModify = false
		default:
			setAccess = false
		}
	case *accessOnly && !*modifyOnly:
		setModify = false
	case *modifyOnly && !*accessOnly:
		setAccess = false
	}
	var atime, mtime *time.Time
	if setAccess {
		atime = &when
	}
	if setModify {
		mtime = &when
	}

	for _, name := range pos {
		node, err := env.FS.Lookup(name)
		if errors.Is(err, vfs.ErrNotFound) {
			if *noCreate {
				continue
			}
			node, err = env.FS.CreateFile(name)
		}
		if err != nil {
			env.Errorf(args.Name(), "cannot touch '%s': %v", name, err)
			continue
		}
		node.SetTimes(atime, mtime)
	}
	return nil
}

// resolveTime picks the instant to stamp: -r, then -d, then -t, then now.
func (c *touchCommand) resolveTime(env *Env, opts *Options, reference, dateStr, stamp string) (time.Time, error) {
	switch {
	case opts.Changed("reference"):
		node, err := env.FS.Lookup(reference)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to get attributes of '%s': %w", reference, err)
		}
		_, mtime, err := node.Times()
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to get attributes of '%s': %w", reference, err)
		}
		return mtime, nil
	case opts.Changed("date"):
		return env.Parser.Parse(dateStr)
	case opts.Changed("t"):
		t, err := datetime.ParseStamp(stamp, env.location())
		if err != nil {
			return time.Time{}, &ParseError{What: "date format", Value: stamp}
		}
		return t, nil
	}
	return env.now(), nil
}
