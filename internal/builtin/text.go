// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"

	"github.com/invowk/vshell/internal/vfs"
)

// ErrNotText is returned when file content is not valid UTF-8.
var ErrNotText = errors.New("not valid UTF-8 text")

// decodeText returns data as a string, or an I/O error naming the encoding
// the content most likely uses.
func decodeText(node *vfs.Node, data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	charset := "binary"
	if r, err := chardet.NewTextDetector().DetectBest(data); err == nil && r.Charset != "" {
		charset = r.Charset
	}
	return "", &vfs.IOError{Path: node.Path(), Err: fmt.Errorf("%w (looks like %s)", ErrNotText, charset)}
}

// readText resolves and decodes a file for cat-like commands.
func readText(env *Env, expr string) (string, error) {
	node, err := env.FS.Lookup(expr)
	if err != nil {
		return "", err
	}
	data, err := node.ReadBytes()
	if err != nil {
		return "", err
	}
	return decodeText(node, data)
}

// printText prints content as lines; a single trailing newline is not
// doubled, so empty content prints one empty line.
func printText(env *Env, text string) {
	env.Println(strings.TrimSuffix(text, "\n"))
}

// leafErrors flattens errors.Join trees into their individual errors.
func leafErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, leafErrors(e)...)
		}
		return out
	}
	return []error{err}
}
