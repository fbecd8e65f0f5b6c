// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/invowk/vshell/internal/datetime"
)

// dateCommand prints instants in a chosen format.
type dateCommand struct {
	baseCommand
}

func init() {
	RegisterDefault(newDateCommand())
}

func newDateCommand() *dateCommand {
	return &dateCommand{
		baseCommand: baseCommand{
			name: "date",
			usage: `Usage: date [OPTION]... [+FORMAT]
Display the current time, or another instant, in the given FORMAT.
  -d, --date=STRING         display the time described by STRING, not now
  -f, --file=DATEFILE       like --date, once for each line of DATEFILE
  -I[FMT], --iso-8601[=FMT] output date/time in ISO 8601 format;
                            FMT is date (default), hours, minutes, seconds or ns
  -R, --rfc-email           output date and time in RFC 5322 format
      --rfc-3339=FMT        output date/time in RFC 3339 format;
                            FMT is date, seconds or ns
  -r, --reference=FILE      display the last modification time of FILE
  -u, --utc                 print Coordinated Universal Time (UTC)
Only one of -d, -f and -r may be given.
FORMAT follows strftime; %s prints seconds since the epoch.`,
		},
	}
}

// Run executes the date command.
func (c *dateCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	iso := opts.Choice("iso-8601", "I", datetime.ISOFormats, "ISO 8601 output")
	opts.Optional("iso-8601", "date")
	rfcEmail := opts.Bool("rfc-email", "R", "RFC 5322 output")
	rfc3339 := opts.Choice("rfc-3339", "", datetime.RFC3339Formats, "RFC 3339 output")
	utc := opts.Bool("utc", "u", "use UTC")
	dateStr := opts.String("date", "d", "", "describe the instant")
	file := opts.String("file", "f", "", "read instants from a file")
	reference := opts.String("reference", "r", "", "use a file's modification time")
	opts.Exclusive("date", "file", "reference")
	opts.Positionals(0, 1)
	pos, err := opts.Parse()
	if err != nil {
		return err
	}

	var freeform string
	if len(pos) == 1 {
		if !strings.HasPrefix(pos[0], "+") {
			return &ParseError{What: "date", Value: pos[0]}
		}
		freeform = pos[0][1:]
	}
	layout, err := datetime.ResolveFormat(datetime.FormatOptions{
		ISO:      *iso,
		RFCEmail: *rfcEmail,
		RFC3339:  *rfc3339,
		UTC:      *utc,
		Freeform: freeform,
	})
	if err != nil {
		return &UsageError{Msg: err.Error()}
	}

	loc := env.location()
	if *utc {
		loc = time.UTC
	}
	show := func(t time.Time) {
		if datetime.HasEpoch(layout) {
			env.Println(strconv.FormatInt(t.Unix(), 10))
			return
		}
		env.Println(datetime.Format(layout, t.In(loc)))
	}

	switch {
	case opts.Changed("file"):
		text, err := readText(env, *file)
		if err != nil {
			return fmt.Errorf("%s: %w", *file, err)
		}
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			t, err := env.Parser.Parse(strings.TrimPrefix(line, "@"))
			if err != nil {
				env.Errorf(args.Name(), "%v", err)
				continue
			}
			show(t)
		}
	case opts.Changed("reference"):
		node, err := env.FS.Lookup(*reference)
		if err != nil {
			return fmt.Errorf("%s: %w", *reference, err)
		}
		_, mtime, err := node.Times()
		if err != nil {
			return fmt.Errorf("%s: %w", *reference, err)
		}
		show(mtime)
	case opts.Changed("date"):
		t, err := env.Parser.Parse(*dateStr)
		if err != nil {
			return err
		}
		show(t)
	default:
		show(env.now())
	}
	return nil
}
