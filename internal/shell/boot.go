// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/invowk/vshell/internal/issue"
	"github.com/invowk/vshell/internal/vfs"
)

// Mount creates a filesystem over backend bound at root. An empty root mounts
// the process working directory.
func Mount(backend afero.Fs, root string, opts ...vfs.Option) (*vfs.FS, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	info, err := backend.Stat(root)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("mount root directory").
			WithResource(root).
			WithIssue(issue.RootNotFoundId).
			WithSuggestion("Check the path for typos").
			WithSuggestion("Pass an existing directory as the first argument").
			Wrap(err).
			BuildError()
	}
	if !info.IsDir() {
		return nil, issue.NewErrorContext().
			WithOperation("mount root directory").
			WithResource(root).
			WithIssue(issue.RootNotADirectoryId).
			WithSuggestion("Pass the directory containing the file instead").
			Wrap(vfs.ErrNotADirectory).
			BuildError()
	}

	fs := vfs.New(backend, opts...)
	if err := fs.Bind(root); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("mount root directory").
			WithResource(root).
			WithIssue(issue.RootNotFoundId).
			Wrap(err).
			BuildError()
	}
	return fs, nil
}

// LoadScript reads a script from the real filesystem and returns its lines.
// Blank lines are kept; the REPL skips them.
func LoadScript(backend afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(backend, path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read script").
			WithResource(path).
			WithIssue(issue.ScriptUnreadableId).
			WithSuggestion("Check that the script exists and is readable").
			Wrap(err).
			BuildError()
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
