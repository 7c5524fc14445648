package commands

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds registered commands.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command // name and aliases map to command
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds: make(map[string]Command),
	}
}

// Register adds a command under its name and every alias.
// Nothing is registered if any of them is already taken.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkFree(c.Name(), "command"); err != nil {
		return err
	}
	for _, alias := range c.Aliases() {
		if err := r.checkFree(alias, "command alias"); err != nil {
			return err
		}
	}

	for _, key := range append([]string{c.Name()}, c.Aliases()...) {
		r.cmds[key] = c
	}
	return nil
}

func (r *Registry) checkFree(key, kind string) error {
	if owner, taken := r.cmds[key]; taken {
		if owner.Name() == key {
			return fmt.Errorf("%s already registered: %s", kind, key)
		}
		return fmt.Errorf("%s already registered: %s (used by %s)", kind, key, owner.Name())
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns all unique commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]Command)
	for _, cmd := range r.cmds {
		seen[cmd.Name()] = cmd
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)

	result := make([]Command, len(names))
	for i, name := range names {
		result[i] = seen[name]
	}
	return result
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
