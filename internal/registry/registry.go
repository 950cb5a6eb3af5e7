package registry

import (
	"fmt"
	"log/slog"

	"github.com/perfectlabs/deployergo/internal/builder"
	"github.com/perfectlabs/deployergo/internal/fragment"
)

// Module is the interface that all annotation modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Factory constructs a builder from a decoded annotation block. NewInput
// returns a fresh pointer to the module's input struct for the loader to
// decode into; Build validates the decoded input and returns the builder.
type Factory struct {
	NewInput func() any
	Build    func(input any) (builder.Builder, error)
}

// Registry holds the merge policy for each fragment category and the builder
// factories for each annotation kind. It is an explicit, constructed object
// passed to the loader and the composition engine; there is no package-level
// state. The registry is populated at startup and read-only afterwards.
type Registry struct {
	policies  map[fragment.Category]CategoryPolicy
	factories map[string]*Factory
}

// New creates a Registry pre-populated with the core category policies.
func New() *Registry {
	r := &Registry{
		policies:  make(map[fragment.Category]CategoryPolicy),
		factories: make(map[string]*Factory),
	}
	for cat, pol := range corePolicies {
		r.policies[cat] = pol
	}
	return r
}

// RegisterBuilder registers a factory for the annotation block type and
// kind, e.g. ("infra", "kubernetes"). Kind-less block types such as
// "metadata" register with an empty kind.
func (r *Registry) RegisterBuilder(blockType fragment.Category, kind string, f *Factory) {
	key := factoryKey(blockType, kind)
	if _, exists := r.factories[key]; exists {
		panic(fmt.Sprintf("annotation builder '%s' already registered", key))
	}
	slog.Debug("Registering annotation builder.", "annotation", key)
	r.factories[key] = f
}

// Factory returns the factory registered for the block type and kind.
func (r *Registry) Factory(blockType fragment.Category, kind string) (*Factory, bool) {
	f, ok := r.factories[factoryKey(blockType, kind)]
	return f, ok
}

func factoryKey(blockType fragment.Category, kind string) string {
	if kind == "" {
		return string(blockType)
	}
	return string(blockType) + "/" + kind
}
