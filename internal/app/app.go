package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/perfectlabs/deployergo/internal/deployment"
	"github.com/perfectlabs/deployergo/internal/flow"
	"github.com/perfectlabs/deployergo/internal/hcl"
	"github.com/perfectlabs/deployergo/internal/platform"
	"github.com/perfectlabs/deployergo/internal/registry"
)

// Loader is the interface for a deployment-file loader. It exists so tests
// and embedders can substitute the HCL implementation.
type Loader interface {
	Load(ctx context.Context, reg *registry.Registry, paths ...string) ([]*hcl.FlowDeployment, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	flows    *flow.Registry
	loader   Loader
	applier  deployment.Applier
	config   *Config
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a registry
// populated by the given modules (the compiled-in core modules when none are
// given). The flow registry may be nil when no flows are registered
// in-process; deployment files then resolve flows as declared-only.
func New(outW io.Writer, cfg *Config, loader Loader, flows *flow.Registry, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All annotation modules registered.", "count", len(modules))

	if flows == nil {
		flows = flow.NewRegistry()
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		flows:    flows,
		loader:   loader,
		applier:  platform.NewClient(cfg.APIURL),
		config:   cfg,
	}
}

// Registry returns the application's annotation registry. This is primarily
// for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// SetApplier replaces the orchestration platform target. This is primarily
// for testing.
func (a *App) SetApplier(target deployment.Applier) {
	a.applier = target
}
