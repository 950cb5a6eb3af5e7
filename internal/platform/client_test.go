package platform

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/perfectlabs/deployergo/internal/deployment"
	"github.com/perfectlabs/deployergo/internal/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testSpec() *deployment.Spec {
	return deployment.New(map[fragment.Category]map[string]cty.Value{
		fragment.CategoryMetadata: {
			"name":        cty.StringVal("simple_flow"),
			"environment": cty.StringVal("dev"),
		},
	})
}

func TestRegister_PostsSpecJSON(t *testing.T) {
	t.Parallel()

	var gotPath, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL + "/") // trailing slash must not double up
	err := client.Register(context.Background(), testSpec())
	require.NoError(t, err)

	assert.Equal(t, "/api/deployments", gotPath)
	assert.Equal(t, "application/json", gotContentType)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "simple_flow", decoded["metadata"]["name"])
}

func TestRegister_SurfacesPlatformRejection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "deployment quota exceeded", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	err := NewClient(server.URL).Register(context.Background(), testSpec())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "deployment quota exceeded")
	assert.Contains(t, err.Error(), `"simple_flow"`)
}

func TestRegister_ConnectionFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut down before the call

	err := NewClient(server.URL).Register(context.Background(), testSpec())
	assert.Error(t, err)
}

func TestRegister_HonorsContextCancellation(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(server.URL).Register(ctx, testSpec())
	assert.ErrorIs(t, err, context.Canceled)
}
