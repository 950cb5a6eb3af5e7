package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/perfectlabs/deployergo/internal/registry"
	"github.com/perfectlabs/deployergo/modules/dask"
	"github.com/perfectlabs/deployergo/modules/kubernetes"
	"github.com/perfectlabs/deployergo/modules/metadata"
	"github.com/perfectlabs/deployergo/modules/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *registry.Registry {
	reg := registry.New()
	for _, m := range []registry.Module{
		&kubernetes.Module{},
		&dask.Module{},
		&s3.Module{},
		&metadata.Module{},
	} {
		m.Register(reg)
	}
	return reg
}

func writeDeployment(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const simpleFlowHCL = `
flow "simple_flow" {
  description = "Add two numbers."

  storage "s3" {
    bucket = "my-bucket"
    path   = "my-path"
  }

  infra "kubernetes" {
    image     = "my-image"
    cpu       = 0.8
    memory_gb = 1.5
  }

  task_runner "dask" {
    num_workers = 5
  }

  metadata {
    environment = "dev"
  }
}
`

func TestLoad_TranslatesFlowBlock(t *testing.T) {
	t.Parallel()

	path := writeDeployment(t, "simple.hcl", simpleFlowHCL)
	deployments, err := NewLoader().Load(context.Background(), newTestRegistry(), path)
	require.NoError(t, err)
	require.Len(t, deployments, 1)

	d := deployments[0]
	assert.Equal(t, "simple_flow", d.FlowName)
	assert.Equal(t, "Add two numbers.", d.Description)

	// Builders come back in source order: storage, infra, task_runner, metadata.
	require.Len(t, d.Builders, 4)
	gotOrder := []string{
		fmt.Sprintf("%T", d.Builders[0]),
		fmt.Sprintf("%T", d.Builders[1]),
		fmt.Sprintf("%T", d.Builders[2]),
		fmt.Sprintf("%T", d.Builders[3]),
	}
	wantOrder := []string{"*s3.Builder", "*kubernetes.Builder", "*dask.Builder", "*metadata.Builder"}
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Fatalf("builder order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
flow "flow_a" {
  metadata {
    environment = "dev"
  }
}
`), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.hcl"), []byte(`
flow "flow_b" {
  metadata {
    environment = "prod"
  }
}
`), 0600))

	deployments, err := NewLoader().Load(context.Background(), newTestRegistry(), dir)
	require.NoError(t, err)
	assert.Len(t, deployments, 2)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown annotation kind", func(t *testing.T) {
		t.Parallel()
		path := writeDeployment(t, "bad.hcl", `
flow "f" {
  infra "nomad" {
    image = "x"
  }
}
`)
		_, err := NewLoader().Load(context.Background(), newTestRegistry(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no infra annotation registered for kind "nomad"`)
	})

	t.Run("invalid annotation parameters", func(t *testing.T) {
		t.Parallel()
		path := writeDeployment(t, "bad.hcl", `
flow "f" {
  infra "kubernetes" {
    image     = "x"
    cpu       = -1
    memory_gb = 1
  }
}
`)
		_, err := NewLoader().Load(context.Background(), newTestRegistry(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cpu")
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()
		path := writeDeployment(t, "broken.hcl", `flow "f" {`)
		_, err := NewLoader().Load(context.Background(), newTestRegistry(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("duplicate flow name", func(t *testing.T) {
		t.Parallel()
		path := writeDeployment(t, "dup.hcl", `
flow "f" {
  metadata {}
}

flow "f" {
  metadata {}
}
`)
		_, err := NewLoader().Load(context.Background(), newTestRegistry(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `flow "f" defined in both`)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		_, err := NewLoader().Load(context.Background(), newTestRegistry(), filepath.Join(t.TempDir(), "absent.hcl"))
		require.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		_, err := NewLoader().Load(context.Background(), newTestRegistry(), t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no .hcl deployment files")
	})
}
