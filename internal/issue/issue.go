// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Catalog entries.
const (
	RootNotFoundId Id = iota + 1
	RootNotADirectoryId
	ScriptUnreadableId
	ConfigLoadFailedId
	ServeFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of a catalog entry.
	MarkdownMsg string

	// Issue is a known failure mode with remediation help.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
	}
)

// Id returns the entry's identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the entry with the named glamour style ("dark", "light", "notty").
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	rootNotFoundIssue = &Issue{
		id: RootNotFoundId,
		mdMsg: `
# Root directory not found

vshell mounts a real directory as the top of its virtual tree, and the one
requested does not exist.

## Things you can try
- Pass an existing directory as the first argument:
~~~
$ vshell ~/projects
~~~
- Or set ` + "`root`" + ` in your config file.`,
	}

	rootNotADirectoryIssue = &Issue{
		id: RootNotADirectoryId,
		mdMsg: `
# Root is not a directory

The path given as root is a file. Only directories can be mounted.

## Things you can try
- Use the file's parent directory as root and ` + "`cd`" + ` from there.`,
	}

	scriptUnreadableIssue = &Issue{
		id: ScriptUnreadableId,
		mdMsg: `
# Start-up script could not be read

The second argument names a script whose lines are run as if typed.

## Things you can try
- Check the path is relative to your working directory, not to the mounted root.
- Make sure the file is readable.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The config file is not valid CUE or does not match the schema.

## Things you can try
- Show where vshell looks for it:
~~~
$ vshell config path
~~~
- Write a fresh default file:
~~~
$ vshell config init
~~~`,
	}

	serveFailedIssue = &Issue{
		id: ServeFailedId,
		mdMsg: `
# SSH server could not start

## Things you can try
- Pick a free port with ` + "`--port`" + ` or ` + "`ssh.port`" + `.
- Check that the host key path is writable.`,
	}

	issues = map[Id]*Issue{
		rootNotFoundIssue.Id():      rootNotFoundIssue,
		rootNotADirectoryIssue.Id(): rootNotADirectoryIssue,
		scriptUnreadableIssue.Id():  scriptUnreadableIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		serveFailedIssue.Id():       serveFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
