package flow

import (
	"fmt"
	"sort"
)

// Registry maps flow names to the callables registered in this process. It
// is populated at startup and read-only afterwards.
type Registry struct {
	flows map[string]Callable
}

// NewRegistry creates an empty flow registry.
func NewRegistry() *Registry {
	return &Registry{flows: make(map[string]Callable)}
}

// Register adds a callable under its own name.
func (r *Registry) Register(c Callable) {
	name := c.Name()
	if _, exists := r.flows[name]; exists {
		panic(fmt.Sprintf("flow with name '%s' already registered", name))
	}
	r.flows[name] = c
}

// Lookup returns the callable registered under name, if any.
func (r *Registry) Lookup(name string) (Callable, bool) {
	c, ok := r.flows[name]
	return c, ok
}

// Names returns all registered flow names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.flows))
	for name := range r.flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
