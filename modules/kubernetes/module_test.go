package kubernetes

import (
	"context"
	"testing"

	"github.com/perfectlabs/deployergo/internal/flow"
	"github.com/perfectlabs/deployergo/internal/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// attach builds the annotation and applies it to a fresh handle, returning
// the resulting infra fragment.
func attach(t *testing.T, cfg Config) fragment.Fragment {
	t.Helper()
	b, err := New(cfg)
	require.NoError(t, err)

	h, err := b.Attach(context.Background(), flow.NewHandle(flow.Declared("f", "")))
	require.NoError(t, err)

	frags := h.Fragments()
	require.Len(t, frags, 1)
	return frags[0]
}

func TestNew_AppliesDefaults(t *testing.T) {
	t.Parallel()

	frag := attach(t, Config{CPU: 0.8, MemoryGB: 1.5})

	image, ok := frag.Get("image")
	require.True(t, ok)
	assert.Equal(t, DefaultImage, image.AsString())

	timeout, ok := frag.Get("job_watch_timeout_seconds")
	require.True(t, ok)
	assert.True(t, timeout.RawEquals(cty.NumberIntVal(600)))

	ttl, ok := frag.Get("finished_job_ttl")
	require.True(t, ok)
	assert.True(t, ttl.RawEquals(cty.NumberIntVal(600)))

	// Namespace stays unset so composition can back-fill it later.
	_, ok = frag.Get("namespace")
	assert.False(t, ok)
}

func TestAttach_CarriesExplicitSettings(t *testing.T) {
	t.Parallel()

	frag := attach(t, Config{
		Image:     "my-image",
		Namespace: "prod-jobs",
		CPU:       0.8,
		MemoryGB:  1.5,
	})

	assert.Equal(t, fragment.CategoryInfra, frag.Category())
	assert.Equal(t, "infra/kubernetes", frag.Source())

	image, _ := frag.Get("image")
	assert.Equal(t, "my-image", image.AsString())
	ns, _ := frag.Get("namespace")
	assert.Equal(t, "prod-jobs", ns.AsString())
	cpu, _ := frag.Get("cpu")
	assert.True(t, cpu.RawEquals(cty.NumberFloatVal(0.8)))
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"negative cpu", Config{CPU: -1, MemoryGB: 1}, "cpu"},
		{"zero cpu", Config{CPU: 0, MemoryGB: 1}, "cpu"},
		{"cpu above ceiling", Config{CPU: 65, MemoryGB: 1}, "cpu"},
		{"zero memory", Config{CPU: 1, MemoryGB: 0}, "memory_gb"},
		{"memory above ceiling", Config{CPU: 1, MemoryGB: 512}, "memory_gb"},
		{"negative watch timeout", Config{CPU: 1, MemoryGB: 1, JobWatchTimeoutSeconds: -5}, "job_watch_timeout_seconds"},
		{"negative job ttl", Config{CPU: 1, MemoryGB: 1, FinishedJobTTL: -5}, "finished_job_ttl"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tc.cfg)

			var invalidErr *fragment.InvalidConfigurationError
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, fragment.CategoryInfra, invalidErr.Category)
			assert.Equal(t, tc.field, invalidErr.Field)
		})
	}
}
