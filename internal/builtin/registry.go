// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultRegistry holds every built-in command.
// Commands are registered during package initialization.
var DefaultRegistry = NewRegistry()

// Registry maps command names and aliases to commands.
// It is safe for concurrent use; SSH sessions share one registry.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds cmd under its name and every alias.
// It panics if any of those names is empty or already taken; a conflicting
// command table is a programming error that must stop start-up.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := AllNames(cmd)
	for _, name := range names {
		if name == "" {
			panic("builtin: cannot register command with empty name")
		}
		if _, exists := r.commands[name]; exists {
			panic(fmt.Sprintf("builtin: command %q already registered", name))
		}
	}
	for _, name := range names {
		r.commands[name] = cmd
	}
}

// Lookup retrieves a command by name or alias.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns every registered name, aliases included, in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := maps.Keys(r.commands)
	slices.Sort(names)
	return names
}

// Commands returns each distinct command once, sorted by primary name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []Command
	for _, cmd := range r.commands {
		if !seen[cmd.Name()] {
			seen[cmd.Name()] = true
			out = append(out, cmd)
		}
	}
	slices.SortFunc(out, func(a, b Command) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

// RegisterDefault registers a command in the DefaultRegistry.
func RegisterDefault(cmd Command) {
	DefaultRegistry.Register(cmd)
}

// HelpText returns the command's help, prefixed with its alias list when it
// answers to more than one name.
func HelpText(cmd Command) string {
	names := AllNames(cmd)
	if len(names) < 2 {
		return cmd.Usage()
	}
	return "Aliases: " + strings.Join(names, ", ") + "\n" + cmd.Usage()
}
