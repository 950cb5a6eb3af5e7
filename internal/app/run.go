package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/perfectlabs/deployergo/internal/builder"
	"github.com/perfectlabs/deployergo/internal/compose"
	"github.com/perfectlabs/deployergo/internal/ctxlog"
	"github.com/perfectlabs/deployergo/internal/flow"
)

// Run executes the main application logic: load the deployment files,
// compose a specification for every flow they define, and either print the
// specifications (build-only) or submit them to the orchestration platform.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	deployments, err := a.loader.Load(ctx, a.registry, a.config.DeploymentPath)
	if err != nil {
		return fmt.Errorf("failed to load deployment configuration: %w", err)
	}

	engine := compose.NewEngine(a.registry)

	for _, d := range deployments {
		callable, ok := a.flows.Lookup(d.FlowName)
		if !ok {
			// Not registered in this process: the declared name and
			// description still satisfy the flow contract for inference.
			callable = flow.Declared(d.FlowName, d.Description)
			a.logger.Debug("Flow not registered in-process, using declared flow.", "flow", d.FlowName)
		}

		handle, err := builder.Apply(ctx, flow.NewHandle(callable), d.Builders...)
		if err != nil {
			return fmt.Errorf("failed to attach annotations for flow %q: %w", d.FlowName, err)
		}

		spec, err := engine.Build(ctx, handle)
		if err != nil {
			return fmt.Errorf("failed to build deployment for flow %q: %w", d.FlowName, err)
		}

		if a.config.BuildOnly {
			encoded, err := json.Marshal(spec)
			if err != nil {
				return fmt.Errorf("failed to encode deployment %q: %w", spec.Name(), err)
			}
			fmt.Fprintf(a.outW, "%s\n", encoded)
			a.logger.Info("Deployment built.", "deployment", spec.Name())
			continue
		}

		if err := spec.Apply(ctx, a.applier); err != nil {
			return err
		}
		a.logger.Info("Deployment applied.", "deployment", spec.Name())
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
