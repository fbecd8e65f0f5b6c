// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"math"
	"math/big"
	"strings"

	"github.com/invowk/vshell/internal/surface"
	"github.com/invowk/vshell/internal/vfs"
)

const (
	defaultHeadLines = 10
	sizeUnits        = "KMGTPEZYRQ"
)

type (
	// headCommand prints the start of files.
	headCommand struct {
		baseCommand
	}

	// count is a parsed -c/-n value. allBut selects everything except the
	// last n units.
	count struct {
		n      int64
		allBut bool
	}
)

func init() {
	RegisterDefault(newHeadCommand())
}

func newHeadCommand() *headCommand {
	return &headCommand{
		baseCommand: baseCommand{
			name: "head",
			usage: `Usage: head [OPTION]... FILE...
Print the first 10 lines of each FILE.
With more than one FILE, precede each with a header giving the file name.
  -c, --bytes=[-]NUM    print the first NUM bytes of each file;
                        with a leading '-', print all but the last NUM bytes
  -n, --lines=[-]NUM    print the first NUM lines instead of the first 10;
                        with a leading '-', print all but the last NUM lines
  -q, --quiet           never print headers giving file names
  -v, --verbose         always print headers giving file names
NUM may have a multiplier suffix: b 512, kB 1000, K 1024, MB 1000*1000,
M 1024*1024, and so on for G, T, P, E, Z, Y, R, Q. Binary prefixes can be
used too: KiB=K, MiB=M, and so on.`,
		},
	}
}

// Run executes the head command. Counts are validated before any file is
// read, so a bad count prints nothing else.
func (c *headCommand) Run(_ context.Context, env *Env, args *Args) error {
	opts := args.Options()
	bytesArg := opts.String("bytes", "c", "", "print the first NUM bytes")
	linesArg := opts.String("lines", "n", "", "print the first NUM lines")
	quiet := opts.Bool("quiet", "q", "never print headers")
	verbose := opts.Bool("verbose", "v", "always print headers")
	opts.Exclusive("bytes", "lines")
	opts.Exclusive("quiet", "verbose")
	opts.Positionals(1, -1)
	pos, err := opts.Parse()
	if err != nil {
		return err
	}

	byBytes := opts.Changed("bytes")
	want := count{n: defaultHeadLines}
	switch {
	case byBytes:
		if want, err = parseCount(*bytesArg, "number of bytes"); err != nil {
			return err
		}
	case opts.Changed("lines"):
		if want, err = parseCount(*linesArg, "number of lines"); err != nil {
			return err
		}
	}

	headers := *verbose || (len(pos) > 1 && !*quiet)
	printed := false
	for _, name := range pos {
		node, err := env.FS.Lookup(name)
		if err != nil {
			env.Errorf(args.Name(), "cannot open '%s' for reading: %v", name, err)
			continue
		}
		if node.IsDir() {
			env.Errorf(args.Name(), "error reading '%s': %v", name, vfs.ErrIsADirectory)
			continue
		}
		data, err := node.ReadBytes()
		if err != nil {
			env.Errorf(args.Name(), "error reading '%s': %v", name, err)
			continue
		}
		text, err := decodeText(node, data)
		if err != nil {
			env.Errorf(args.Name(), "error reading '%s': %v", name, err)
			continue
		}

		if headers {
			if printed {
				env.Println("")
			}
			env.Println("==> "+name+" <==", surface.Blue)
			printed = true
		}
		var out string
		if byBytes {
			out = headBytes(text, want)
		} else {
			out = headLines(text, want)
		}
		if out != "" {
			printText(env, out)
		}
	}
	return nil
}

func headBytes(text string, want count) string {
	size := int64(len(text))
	if want.allBut {
		if want.n >= size {
			return ""
		}
		return text[:size-want.n]
	}
	if want.n >= size {
		return text
	}
	return text[:want.n]
}

func headLines(text string, want count) string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	total := int64(len(lines))
	keep := want.n
	if want.allBut {
		keep = total - want.n
	}
	switch {
	case keep <= 0:
		return ""
	case keep >= total:
		return text
	}
	return strings.Join(lines[:keep], "")
}

// parseCount reads a head count: an optional leading '-', decimal digits
// and an optional multiplier suffix. Values past the int64 range clamp.
func parseCount(s, what string) (count, error) {
	bad := &ParseError{What: what, Value: s}
	text, allBut := strings.CutPrefix(s, "-")
	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == 0 {
		return count{}, bad
	}
	mult, ok := multiplier(text[end:])
	if !ok {
		return count{}, bad
	}

	n, _ := new(big.Int).SetString(text[:end], 10)
	n.Mul(n, mult)
	if !n.IsInt64() {
		return count{n: math.MaxInt64, allBut: allBut}, nil
	}
	return count{n: n.Int64(), allBut: allBut}, nil
}

// multiplier maps a count suffix to its factor. "b" is 512; a unit letter
// alone or followed by "iB" is a power of 1024; a unit letter followed by
// "B" or "b" is a power of 1000.
func multiplier(suffix string) (*big.Int, bool) {
	switch {
	case suffix == "":
		return big.NewInt(1), true
	case suffix == "b":
		return big.NewInt(512), true
	}

	base := int64(1024)
	unit := suffix
	switch {
	case len(suffix) == 3 && suffix[1:] == "iB":
		unit = suffix[:1]
	case len(suffix) == 2 && (suffix[1] == 'B' || suffix[1] == 'b'):
		base = 1000
		unit = suffix[:1]
	}
	if len(unit) != 1 {
		return nil, false
	}
	power, ok := unitPower(unit[0])
	if !ok {
		return nil, false
	}
	return new(big.Int).Exp(big.NewInt(base), big.NewInt(int64(power)), nil), true
}

// unitPower returns the exponent of a unit letter. Only k, m and g are
// also accepted in lower case.
func unitPower(c byte) (int, bool) {
	if i := strings.IndexByte(sizeUnits, c); i >= 0 {
		return i + 1, true
	}
	if i := strings.IndexByte("kmg", c); i >= 0 {
		return i + 1, true
	}
	return 0, false
}
