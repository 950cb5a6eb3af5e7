// Package metadata provides the metadata annotation: explicit overrides for
// the deployment's name, version, environment, description and tags. Explicit
// values always win over what metadata inference derives from the flow.
package metadata

import (
	"context"

	"github.com/perfectlabs/deployergo/internal/builder"
	"github.com/perfectlabs/deployergo/internal/flow"
	"github.com/perfectlabs/deployergo/internal/fragment"
	"github.com/perfectlabs/deployergo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Config defines the parameters of the metadata annotation. Every field is
// optional; unset fields leave the inferred or earlier-fragment value in
// place. Environment has no inference fallback, so omitting it everywhere
// fails composition.
type Config struct {
	Name        string   `hcl:"name,optional"`
	Version     string   `hcl:"version,optional"`
	Description string   `hcl:"description,optional"`
	Environment string   `hcl:"environment,optional"`
	FlowRunName string   `hcl:"flow_run_name,optional"`
	Tags        []string `hcl:"tags,optional"`
}

// Builder is the metadata annotation builder.
type Builder struct {
	cfg Config
}

// New validates the configuration and returns the builder.
func New(cfg Config) (*Builder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg}, nil
}

func (c Config) validate() error {
	for _, tag := range c.Tags {
		if tag == "" {
			return &fragment.InvalidConfigurationError{
				Category: fragment.CategoryMetadata,
				Field:    "tags",
				Reason:   "must not contain empty tags",
			}
		}
	}
	return nil
}

// Attach implements builder.Builder.
func (b *Builder) Attach(ctx context.Context, h *flow.Handle) (*flow.Handle, error) {
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}

	fields := map[string]cty.Value{}
	if b.cfg.Name != "" {
		fields["name"] = cty.StringVal(b.cfg.Name)
	}
	if b.cfg.Version != "" {
		fields["version"] = cty.StringVal(b.cfg.Version)
	}
	if b.cfg.Description != "" {
		fields["description"] = cty.StringVal(b.cfg.Description)
	}
	if b.cfg.Environment != "" {
		fields["environment"] = cty.StringVal(b.cfg.Environment)
	}
	if b.cfg.FlowRunName != "" {
		fields["flow_run_name"] = cty.StringVal(b.cfg.FlowRunName)
	}
	if len(b.cfg.Tags) > 0 {
		tags := make([]cty.Value, 0, len(b.cfg.Tags))
		for _, tag := range b.cfg.Tags {
			tags = append(tags, cty.StringVal(tag))
		}
		fields["tags"] = cty.ListVal(tags)
	}

	return h.WithFragment(fragment.New(fragment.CategoryMetadata, "metadata", fields))
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the metadata builder factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBuilder(fragment.CategoryMetadata, "", &registry.Factory{
		NewInput: func() any { return new(Config) },
		Build: func(input any) (builder.Builder, error) {
			return New(*input.(*Config))
		},
	})
}
