// Package hcl loads deployment files and translates their annotation blocks
// into ordered builder lists via the registry's factories.
package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/perfectlabs/deployergo/internal/builder"
	"github.com/perfectlabs/deployergo/internal/ctxlog"
	"github.com/perfectlabs/deployergo/internal/fragment"
	"github.com/perfectlabs/deployergo/internal/fsutil"
	"github.com/perfectlabs/deployergo/internal/registry"
	"github.com/perfectlabs/deployergo/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// FlowDeployment is one flow block translated into deployable form: the flow
// name, its declared description (may be empty), and the annotation builders
// in source order. Source order is application order, so a later block
// overrides an earlier one where both touch the same category and field.
type FlowDeployment struct {
	FlowName    string
	Description string
	Builders    []builder.Builder
}

// Loader parses deployment files.
type Loader struct{}

// NewLoader creates a deployment file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every deployment file reachable from the given paths (a path
// may be a single .hcl file or a directory searched recursively) and returns
// the flow deployments found, in file order. Flow names must be unique
// across all loaded files.
func (l *Loader) Load(ctx context.Context, reg *registry.Registry, paths ...string) ([]*FlowDeployment, error) {
	logger := ctxlog.FromContext(ctx)

	var filePaths []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read deployment path: %w", err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("failed to walk deployment directory %s: %w", path, err)
			}
			filePaths = append(filePaths, found...)
		} else {
			filePaths = append(filePaths, path)
		}
	}

	if len(filePaths) == 0 {
		return nil, fmt.Errorf("no .hcl deployment files found in %v", paths)
	}
	logger.Debug("Found deployment files to load.", "files", filePaths)

	parser := hclparse.NewParser()
	seen := make(map[string]string)
	var deployments []*FlowDeployment

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse deployment file %s: %w", filePath, diags)
		}

		var parsed schema.FlowFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode deployment file %s: %w", filePath, diags)
		}

		for _, fb := range parsed.Flows {
			if prev, dup := seen[fb.Name]; dup {
				return nil, fmt.Errorf("flow %q defined in both %s and %s", fb.Name, prev, filePath)
			}
			seen[fb.Name] = filePath

			d, err := l.translateFlow(ctx, reg, fb)
			if err != nil {
				return nil, fmt.Errorf("in deployment file %s: %w", filePath, err)
			}
			deployments = append(deployments, d)
		}
		logger.Debug("Loaded deployment file.", "file", filePath)
	}

	logger.Info("Deployment files loaded.", "flows", len(deployments))
	return deployments, nil
}

// translateFlow turns one flow block into a FlowDeployment. The block body
// is walked with Content so annotation blocks keep their source order.
func (l *Loader) translateFlow(ctx context.Context, reg *registry.Registry, fb *schema.Flow) (*FlowDeployment, error) {
	content, diags := fb.Body.Content(schema.FlowBodySchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid flow %q: %w", fb.Name, diags)
	}

	d := &FlowDeployment{FlowName: fb.Name}

	if attr, ok := content.Attributes["description"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid description for flow %q: %w", fb.Name, diags)
		}
		val, err := convert.Convert(val, cty.String)
		if err != nil || val.IsNull() {
			return nil, fmt.Errorf("description for flow %q must be a string", fb.Name)
		}
		d.Description = val.AsString()
	}

	for _, blk := range content.Blocks {
		kind := ""
		if len(blk.Labels) > 0 {
			kind = blk.Labels[0]
		}

		fac, ok := reg.Factory(fragment.Category(blk.Type), kind)
		if !ok {
			return nil, fmt.Errorf("flow %q: no %s annotation registered for kind %q", fb.Name, blk.Type, kind)
		}

		input := fac.NewInput()
		if diags := gohcl.DecodeBody(blk.Body, nil, input); diags.HasErrors() {
			return nil, fmt.Errorf("flow %q: invalid %s %q block: %w", fb.Name, blk.Type, kind, diags)
		}

		b, err := fac.Build(input)
		if err != nil {
			return nil, fmt.Errorf("flow %q: %w", fb.Name, err)
		}
		d.Builders = append(d.Builders, b)
	}

	return d, nil
}
