// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"github.com/invowk/vshell/internal/vfs"
)

// Tokenizer splits command lines into fields with shell quoting rules.
type Tokenizer struct {
	// FS, when set together with Glob, expands unquoted glob words against
	// the virtual tree.
	FS   *vfs.FS
	Glob bool
	// Vars returns the variables visible to $NAME expansion as KEY=VALUE pairs.
	Vars func() []string
}

// Split tokenizes line. Quotes group words, $NAME expands, and an unquoted
// word with glob metacharacters becomes the sorted list of matching paths.
// A pattern that matches nothing is kept as written.
func (t *Tokenizer) Split(line string) ([]string, error) {
	var words []*syntax.Word
	err := syntax.NewParser().Words(strings.NewReader(line), func(w *syntax.Word) bool {
		words = append(words, w)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	var env []string
	if t.Vars != nil {
		env = t.Vars()
	}
	cfg := &expand.Config{Env: expand.ListEnviron(env...)}

	var fields []string
	for _, w := range words {
		if pattern, ok := globPattern(w); ok && t.Glob && t.FS != nil {
			if matches, err := t.FS.Glob(pattern); err == nil && len(matches) > 0 {
				fields = append(fields, matches...)
				continue
			}
		}
		expanded, err := expand.Fields(cfg, w)
		if err != nil {
			return nil, fmt.Errorf("expansion error: %w", err)
		}
		fields = append(fields, expanded...)
	}
	return fields, nil
}

// globPattern returns the literal text of w when it is entirely unquoted
// and contains glob metacharacters.
func globPattern(w *syntax.Word) (string, bool) {
	lit := w.Lit()
	if lit == "" || len(w.Parts) != 1 || strings.Contains(lit, `\`) {
		return "", false
	}
	return lit, vfs.HasMeta(lit)
}
