// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/invowk/vshell/internal/vfs"
)

// historyCommand inspects and edits the session history.
type historyCommand struct {
	baseCommand
}

func init() {
	RegisterDefault(newHistoryCommand())
}

func newHistoryCommand() *historyCommand {
	return &historyCommand{
		baseCommand: baseCommand{
			name: "history",
			usage: `Usage: history [N]
       history -c
       history -d OFFSET
       history -s WORDS...
       history -a|-n|-r|-w [FILE]
Without options, print the last N entries (all by default).
  -c          clear the history
  -d OFFSET   delete the entry at OFFSET; negative offsets count from the end
  -s WORDS    append WORDS as a single entry
  -a          append the history to FILE
  -n          read lines from FILE that are not yet in the history
  -r          read every line of FILE into the history
  -w          write the history to FILE, replacing it
FILE defaults to ` + DefaultHistoryFile + `.`,
		},
	}
}

// Run executes the history command.
func (c *historyCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	clearAll := opts.Bool("", "c", "clear the history")
	del := opts.String("", "d", "", "delete entry at offset")
	store := opts.Bool("", "s", "append words as one entry")
	appendFile := opts.Bool("", "a", "append history to file")
	readNew := opts.Bool("", "n", "read new lines from file")
	readAll := opts.Bool("", "r", "read file into history")
	write := opts.Bool("", "w", "write history to file")
	opts.Exclusive("c", "d", "s", "a", "n", "r", "w")

	pos, err := opts.Parse()
	if err != nil {
		return err
	}
	switch {
	case *store:
		err = checkArity(pos, 1, -1)
	case *clearAll, opts.Changed("d"):
		err = checkArity(pos, 0, 0)
	default:
		err = checkArity(pos, 0, 1)
	}
	if err != nil {
		return err
	}

	h := env.History
	switch {
	case *clearAll:
		h.Clear()
	case opts.Changed("d"):
		offset, err := strconv.Atoi(*del)
		if err != nil {
			return &ParseError{What: "offset", Value: *del}
		}
		if err := h.Delete(offset); err != nil {
			return err
		}
	case *store:
		h.Add(strings.Join(pos, " "))
	case *appendFile, *write:
		return c.writeFile(env, c.target(env, pos), h.Lines(), *appendFile)
	case *readNew, *readAll:
		return c.readFile(env, c.target(env, pos), *readNew)
	default:
		n := h.Len()
		if len(pos) == 1 {
			if n, err = strconv.Atoi(pos[0]); err != nil {
				return &ParseError{What: "count", Value: pos[0]}
			}
		}
		start, lines, err := h.Last(n)
		if err != nil {
			return err
		}
		if len(lines) > 0 {
			env.Println(strings.TrimSuffix(h.Format(start, lines), "\n"))
		}
	}
	return nil
}

func (c *historyCommand) target(env *Env, pos []string) string {
	if len(pos) == 1 {
		return pos[0]
	}
	return env.historyFile()
}

func (c *historyCommand) writeFile(env *Env, expr string, lines []string, appendMode bool) error {
	node, err := env.FS.Lookup(expr)
	if errors.Is(err, vfs.ErrNotFound) {
		node, err = env.FS.CreateFile(expr)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", expr, err)
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := node.WriteBytes([]byte(b.String()), appendMode); err != nil {
		return fmt.Errorf("%s: %w", expr, err)
	}
	return nil
}

func (c *historyCommand) readFile(env *Env, expr string, onlyNew bool) error {
	text, err := readText(env, expr)
	if err != nil {
		return fmt.Errorf("%s: %w", expr, err)
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || (onlyNew && env.History.Contains(line)) {
			continue
		}
		env.History.Add(line)
	}
	return nil
}
