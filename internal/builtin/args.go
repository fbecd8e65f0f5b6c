// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

type (
	// Args is the argument view handed to a command: the name it was invoked
	// under and the tokens that followed.
	Args struct {
		name  string
		items []string
	}

	// Options declares a command's flags and positional arity, then parses
	// the invocation against them.
	Options struct {
		args   *Args
		set    *pflag.FlagSet
		groups [][]string
		minPos int
		maxPos int
		// attached maps the shorthand of an optional-value flag to its name.
		attached map[string]string
	}

	// UsageError reports a bad argument count or flag combination.
	// It aborts the whole command.
	UsageError struct {
		Msg string
	}

	// ParseError reports a malformed value such as a count or timestamp.
	ParseError struct {
		// What names the kind of value, e.g. "number of lines".
		What  string
		Value string
	}

	choiceValue struct {
		value   string
		choices []string
	}
)

// NewArgs builds the view for one invocation.
func NewArgs(name string, items []string) *Args {
	return &Args{name: name, items: items}
}

// Name returns the name the command was invoked as.
func (a *Args) Name() string {
	return a.name
}

// Len returns the number of tokens after the command name.
func (a *Args) Len() int {
	return len(a.items)
}

// At returns the token at position i, or "" when out of range.
func (a *Args) At(i int) string {
	if i < 0 || i >= len(a.items) {
		return ""
	}
	return a.items[i]
}

// All returns a copy of the tokens.
func (a *Args) All() []string {
	return slices.Clone(a.items)
}

// Has reports whether any of items appears among the tokens.
func (a *Args) Has(items ...string) bool {
	for _, it := range items {
		if slices.Contains(a.items, it) {
			return true
		}
	}
	return false
}

// Options starts a flag declaration for this invocation.
// Positionals are unrestricted until Positionals is called.
func (a *Args) Options() *Options {
	set := pflag.NewFlagSet(a.name, pflag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.Usage = func() {}
	return &Options{args: a, set: set, maxPos: -1}
}

// Bool declares a boolean flag. Either name or short may be empty.
func (o *Options) Bool(name, short, usage string) *bool {
	return o.set.BoolP(flagName(name, short), short, false, usage)
}

// String declares a flag taking a value.
func (o *Options) String(name, short, def, usage string) *string {
	return o.set.StringP(flagName(name, short), short, def, usage)
}

// Choice declares a flag whose value must be one of choices.
func (o *Options) Choice(name, short string, choices []string, usage string) *string {
	v := &choiceValue{choices: choices}
	o.set.VarP(v, flagName(name, short), short, usage)
	return &v.value
}

// Optional lets a declared flag appear without a value, in which case it
// takes def. A value must then be attached (-Ivalue, -I=value, --flag=value).
func (o *Options) Optional(name, def string) {
	f := o.set.Lookup(name)
	if f == nil {
		return
	}
	f.NoOptDefVal = def
	if f.Shorthand != "" {
		if o.attached == nil {
			o.attached = make(map[string]string)
		}
		o.attached[f.Shorthand] = name
	}
}

// tokens returns the items with -<short><value> of optional-value flags
// rewritten to --name=value, which pflag can parse. Items after "--" are
// operands and stay untouched.
func (o *Options) tokens() []string {
	if len(o.attached) == 0 {
		return o.args.items
	}
	out := make([]string, 0, len(o.args.items))
	for i, item := range o.args.items {
		if item == "--" {
			return append(out, o.args.items[i:]...)
		}
		if len(item) > 2 && item[0] == '-' && item[1] != '-' && item[2] != '=' {
			if name, ok := o.attached[item[1:2]]; ok {
				out = append(out, "--"+name+"="+item[2:])
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// Hide keeps a declared flag out of generated listings.
func (o *Options) Hide(name string) {
	if f := o.set.Lookup(name); f != nil {
		f.Hidden = true
	}
}

// Exclusive declares that at most one of the named flags may be given.
func (o *Options) Exclusive(names ...string) {
	o.groups = append(o.groups, names)
}

// Positionals bounds the number of operands; max < 0 means unbounded.
func (o *Options) Positionals(minimum, maximum int) {
	o.minPos, o.maxPos = minimum, maximum
}

// Changed reports whether the flag was given on the command line.
func (o *Options) Changed(name string) bool {
	return o.set.Changed(name)
}

// Parse parses the tokens and returns the operands.
func (o *Options) Parse() ([]string, error) {
	if err := o.set.Parse(o.tokens()); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, &UsageError{Msg: "unrecognized option"}
		}
		return nil, &UsageError{Msg: err.Error()}
	}
	for _, group := range o.groups {
		var given []string
		for _, name := range group {
			if o.set.Changed(name) {
				given = append(given, o.display(name))
			}
		}
		if len(given) > 1 {
			return nil, &UsageError{Msg: fmt.Sprintf("options %s are mutually exclusive", strings.Join(given, ", "))}
		}
	}

	pos := o.set.Args()
	if err := checkArity(pos, o.minPos, o.maxPos); err != nil {
		return nil, err
	}
	return pos, nil
}

// checkArity bounds the operand count; maximum < 0 means unbounded.
func checkArity(pos []string, minimum, maximum int) error {
	switch {
	case len(pos) < minimum && len(pos) == 0:
		return &UsageError{Msg: "missing operand"}
	case len(pos) < minimum:
		return &UsageError{Msg: fmt.Sprintf("missing operand after '%s'", pos[len(pos)-1])}
	case maximum >= 0 && len(pos) > maximum:
		return &UsageError{Msg: fmt.Sprintf("extra operand '%s'", pos[maximum])}
	}
	return nil
}

func (o *Options) display(name string) string {
	f := o.set.Lookup(name)
	if f != nil && f.Shorthand != "" {
		return "'-" + f.Shorthand + "'"
	}
	return "'--" + name + "'"
}

func flagName(name, short string) string {
	if name == "" {
		return short
	}
	return name
}

// Error returns the message.
func (e *UsageError) Error() string {
	return e.Msg
}

// Error returns "invalid <what>: '<value>'".
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s: '%s'", e.What, e.Value)
}

func (v *choiceValue) String() string { return v.value }

func (v *choiceValue) Set(s string) error {
	if !slices.Contains(v.choices, s) {
		return fmt.Errorf("valid arguments are %s", strings.Join(quoteAll(v.choices), ", "))
	}
	v.value = s
	return nil
}

func (v *choiceValue) Type() string { return "string" }

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = "'" + it + "'"
	}
	return out
}
