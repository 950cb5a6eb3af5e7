// Package s3 provides the S3 storage annotation: it points the deployment at
// the bucket and path the platform pulls the flow's code from.
package s3

import (
	"context"
	"strings"

	"github.com/perfectlabs/deployergo/internal/builder"
	"github.com/perfectlabs/deployergo/internal/flow"
	"github.com/perfectlabs/deployergo/internal/fragment"
	"github.com/perfectlabs/deployergo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Config defines the parameters of the S3 storage annotation.
type Config struct {
	Bucket string `hcl:"bucket"`
	Path   string `hcl:"path"`
}

// Builder is the storage annotation builder for S3.
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
	if c.Bucket == "" || strings.Contains(c.Bucket, "/") {
		return &fragment.InvalidConfigurationError{
			Category: fragment.CategoryStorage,
			Field:    "bucket",
			Reason:   "must be a non-empty bucket name without '/'",
		}
	}
	if strings.Trim(c.Path, "/") == "" {
		return &fragment.InvalidConfigurationError{
			Category: fragment.CategoryStorage,
			Field:    "path",
			Reason:   "must be a non-empty object path",
		}
	}
	return nil
}

// Attach implements builder.Builder.
func (b *Builder) Attach(ctx context.Context, h *flow.Handle) (*flow.Handle, error) {
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}

	path := strings.Trim(b.cfg.Path, "/")
	fields := map[string]cty.Value{
		"scheme":      cty.StringVal("s3"),
		"bucket":      cty.StringVal(b.cfg.Bucket),
		"path":        cty.StringVal(path),
		"bucket_path": cty.StringVal(b.cfg.Bucket + "/" + path),
	}

	return h.WithFragment(fragment.New(fragment.CategoryStorage, "storage/s3", fields))
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the s3 storage builder factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBuilder(fragment.CategoryStorage, "s3", &registry.Factory{
		NewInput: func() any { return new(Config) },
		Build: func(input any) (builder.Builder, error) {
			return New(*input.(*Config))
		},
	})
}
