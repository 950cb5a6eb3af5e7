// Package dask provides the Dask task-runner annotation: it contributes the
// worker pool settings the platform hands to the flow's task runner.
package dask

import (
	"context"

	"github.com/perfectlabs/deployergo/internal/builder"
	"github.com/perfectlabs/deployergo/internal/flow"
	"github.com/perfectlabs/deployergo/internal/fragment"
	"github.com/perfectlabs/deployergo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Config defines the parameters of the Dask task-runner annotation. When
// SchedulerAddress is set the flow connects to an existing cluster instead
// of spawning a local one.
type Config struct {
	NumWorkers       int64  `hcl:"num_workers"`
	ThreadsPerWorker int64  `hcl:"threads_per_worker,optional"`
	SchedulerAddress string `hcl:"scheduler_address,optional"`
}

// Builder is the task-runner annotation builder for Dask.
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
	if c.NumWorkers <= 0 {
		return &fragment.InvalidConfigurationError{
			Category: fragment.CategoryTaskRunner,
			Field:    "num_workers",
			Reason:   "must be greater than 0",
		}
	}
	if c.ThreadsPerWorker < 0 {
		return &fragment.InvalidConfigurationError{
			Category: fragment.CategoryTaskRunner,
			Field:    "threads_per_worker",
			Reason:   "must not be negative",
		}
	}
	return nil
}

// Attach implements builder.Builder.
func (b *Builder) Attach(ctx context.Context, h *flow.Handle) (*flow.Handle, error) {
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}

	fields := map[string]cty.Value{
		"runner":      cty.StringVal("dask"),
		"num_workers": cty.NumberIntVal(b.cfg.NumWorkers),
	}
	if b.cfg.ThreadsPerWorker > 0 {
		fields["threads_per_worker"] = cty.NumberIntVal(b.cfg.ThreadsPerWorker)
	}
	if b.cfg.SchedulerAddress != "" {
		fields["scheduler_address"] = cty.StringVal(b.cfg.SchedulerAddress)
	}

	return h.WithFragment(fragment.New(fragment.CategoryTaskRunner, "task_runner/dask", fields))
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the dask task-runner builder factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBuilder(fragment.CategoryTaskRunner, "dask", &registry.Factory{
		NewInput: func() any { return new(Config) },
		Build: func(input any) (builder.Builder, error) {
			return New(*input.(*Config))
		},
	})
}
