package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew_CopiesFields(t *testing.T) {
	t.Parallel()

	fields := map[string]cty.Value{
		"cpu":   cty.NumberFloatVal(0.8),
		"image": cty.StringVal("my-image"),
	}
	frag := New(CategoryInfra, "infra/kubernetes", fields)

	// Mutating the caller's map must not affect the fragment.
	fields["image"] = cty.StringVal("other-image")

	got, ok := frag.Get("image")
	require.True(t, ok)
	assert.Equal(t, "my-image", got.AsString())
}

func TestFields_ReturnsCopy(t *testing.T) {
	t.Parallel()

	frag := New(CategoryStorage, "storage/s3", map[string]cty.Value{
		"bucket": cty.StringVal("my-bucket"),
	})

	copied := frag.Fields()
	copied["bucket"] = cty.StringVal("tampered")

	got, ok := frag.Get("bucket")
	require.True(t, ok)
	assert.Equal(t, "my-bucket", got.AsString())
}

func TestFieldNames_Sorted(t *testing.T) {
	t.Parallel()

	frag := New(CategoryMetadata, "metadata", map[string]cty.Value{
		"version":     cty.StringVal("1.0.0"),
		"environment": cty.StringVal("dev"),
		"name":        cty.StringVal("simple_flow"),
	})

	assert.Equal(t, []string{"environment", "name", "version"}, frag.FieldNames())
	assert.Equal(t, 3, frag.Len())
}

func TestGet_UnsetField(t *testing.T) {
	t.Parallel()

	frag := New(CategoryTaskRunner, "task_runner/dask", nil)

	_, ok := frag.Get("num_workers")
	assert.False(t, ok)
	assert.Zero(t, frag.Len())
}

func TestInvalidConfigurationError_Message(t *testing.T) {
	t.Parallel()

	err := &InvalidConfigurationError{Category: CategoryInfra, Field: "cpu", Reason: "must be greater than 0"}
	assert.Contains(t, err.Error(), "infra")
	assert.Contains(t, err.Error(), `"cpu"`)
}
