package cli

import (
	"bytes"
	"testing"

	"github.com/perfectlabs/deployergo/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DeploymentPathSources(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{"long flag", []string{"-deployment", "deploy.hcl"}},
		{"short flag", []string{"-d", "deploy.hcl"}},
		{"positional", []string{"deploy.hcl"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)

			require.NoError(t, err)
			assert.False(t, shouldExit)
			require.NotNil(t, cfg)
			assert.Equal(t, "deploy.hcl", cfg.DeploymentPath)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, _, err := Parse([]string{"deploy.hcl"}, &out)
	require.NoError(t, err)

	assert.Equal(t, app.DefaultAPIURL, cfg.APIURL)
	assert.False(t, cfg.BuildOnly)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_AllFlags(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, _, err := Parse([]string{
		"-api-url", "http://platform.internal:4200",
		"-build-only",
		"-log-format", "text",
		"-log-level", "debug",
		"deploy.hcl",
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, "http://platform.internal:4200", cfg.APIURL)
	assert.True(t, cfg.BuildOnly)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_HelpRequestsCleanExit(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "DEPLOYMENT_PATH")
}

func TestParse_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []string
		message string
	}{
		{"unknown flag", []string{"-bogus"}, "flag provided but not defined"},
		{"bad log format", []string{"-log-format", "yaml", "deploy.hcl"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "loud", "deploy.hcl"}, "invalid log-level"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)

			assert.Nil(t, cfg)
			assert.False(t, shouldExit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Error(), tc.message)
		})
	}
}
