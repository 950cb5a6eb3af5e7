// Package kubernetes provides the Kubernetes infrastructure annotation: it
// contributes the image, namespace and resource settings a flow run needs
// when the orchestration platform schedules it as a Kubernetes job.
package kubernetes

import (
	"context"

	"github.com/perfectlabs/deployergo/internal/builder"
	"github.com/perfectlabs/deployergo/internal/flow"
	"github.com/perfectlabs/deployergo/internal/fragment"
	"github.com/perfectlabs/deployergo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

const (
	// DefaultImage runs flows on the platform's stock Kubernetes image.
	DefaultImage = "prefecthq/prefect:2-latest-kubernetes"

	// defaultJobSeconds is applied to both the job watch timeout and the
	// finished-job TTL when unset.
	defaultJobSeconds = 10 * 60
)

// Config defines the parameters of the Kubernetes infra annotation.
// Namespace is optional; when left empty the composition engine back-fills
// it from the resolved deployment name.
type Config struct {
	Image                  string  `hcl:"image,optional"`
	Namespace              string  `hcl:"namespace,optional"`
	CPU                    float64 `hcl:"cpu"`
	MemoryGB               float64 `hcl:"memory_gb"`
	JobWatchTimeoutSeconds int64   `hcl:"job_watch_timeout_seconds,optional"`
	FinishedJobTTL         int64   `hcl:"finished_job_ttl,optional"`
}

// Builder is the infra annotation builder for Kubernetes.
type Builder struct {
	cfg Config
}

// New validates the configuration, applies defaults, and returns the builder.
func New(cfg Config) (*Builder, error) {
	if cfg.Image == "" {
		cfg.Image = DefaultImage
	}
	if cfg.JobWatchTimeoutSeconds == 0 {
		cfg.JobWatchTimeoutSeconds = defaultJobSeconds
	}
	if cfg.FinishedJobTTL == 0 {
		cfg.FinishedJobTTL = defaultJobSeconds
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg}, nil
}

func (c Config) validate() error {
	if c.CPU <= 0 || c.CPU > 64 {
		return &fragment.InvalidConfigurationError{
			Category: fragment.CategoryInfra,
			Field:    "cpu",
			Reason:   "must be greater than 0 and at most 64",
		}
	}
	if c.MemoryGB <= 0 || c.MemoryGB > 256 {
		return &fragment.InvalidConfigurationError{
			Category: fragment.CategoryInfra,
			Field:    "memory_gb",
			Reason:   "must be greater than 0 and at most 256",
		}
	}
	if c.JobWatchTimeoutSeconds < 0 {
		return &fragment.InvalidConfigurationError{
			Category: fragment.CategoryInfra,
			Field:    "job_watch_timeout_seconds",
			Reason:   "must not be negative",
		}
	}
	if c.FinishedJobTTL < 0 {
		return &fragment.InvalidConfigurationError{
			Category: fragment.CategoryInfra,
			Field:    "finished_job_ttl",
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
		"image":                     cty.StringVal(b.cfg.Image),
		"cpu":                       cty.NumberFloatVal(b.cfg.CPU),
		"memory_gb":                 cty.NumberFloatVal(b.cfg.MemoryGB),
		"job_watch_timeout_seconds": cty.NumberIntVal(b.cfg.JobWatchTimeoutSeconds),
		"finished_job_ttl":          cty.NumberIntVal(b.cfg.FinishedJobTTL),
	}
	if b.cfg.Namespace != "" {
		fields["namespace"] = cty.StringVal(b.cfg.Namespace)
	}

	return h.WithFragment(fragment.New(fragment.CategoryInfra, "infra/kubernetes", fields))
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the kubernetes infra builder factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBuilder(fragment.CategoryInfra, "kubernetes", &registry.Factory{
		NewInput: func() any { return new(Config) },
		Build: func(input any) (builder.Builder, error) {
			return New(*input.(*Config))
		},
	})
}
