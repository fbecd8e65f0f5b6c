// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/invowk/vshell/internal/history"
	"github.com/invowk/vshell/internal/surface"
	"github.com/invowk/vshell/internal/vfs"
)

// DefaultHistoryFile is where history -a/-n/-r/-w read and write when no
// FILE operand is given. It is resolved from the current volume's root.
const DefaultHistoryFile = "/.vsh_history"

type (
	// DateParser turns free-form date strings into instants.
	DateParser interface {
		Parse(s string) (time.Time, error)
	}

	// Env is the per-session state every command runs against.
	Env struct {
		FS       *vfs.FS
		History  *history.Store
		Surface  surface.Surface
		Parser   DateParser
		Registry *Registry
		Logger   *log.Logger

		// Now returns the current instant; Location is the session time zone.
		Now      func() time.Time
		Location *time.Location

		// HistoryFile overrides DefaultHistoryFile when set.
		HistoryFile string
		// HelpStyle is the glamour style used by help; "plain" disables rendering.
		HelpStyle string
	}
)

// Println prints one line.
func (e *Env) Println(text string, tags ...surface.Tag) {
	e.Surface.Print(text, tags...)
}

// Errorf prints "cmd: message" in red. Commands use it for per-item
// failures that do not stop the remaining items.
func (e *Env) Errorf(cmd, format string, a ...any) {
	e.Surface.Print(cmd+": "+fmt.Sprintf(format, a...), surface.Red)
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.Local
}

func (e *Env) historyFile() string {
	if e.HistoryFile != "" {
		return e.HistoryFile
	}
	return DefaultHistoryFile
}
