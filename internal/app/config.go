package app

import "errors"

// DefaultAPIURL is the orchestration platform API assumed when no -api-url
// flag is given.
const DefaultAPIURL = "http://127.0.0.1:4200"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DeploymentPath string // .hcl file or directory of deployment files
	APIURL         string // orchestration platform base URL
	BuildOnly      bool   // compose and print, do not submit

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DeploymentPath == "" {
		return nil, errors.New("DeploymentPath is a required configuration field and cannot be empty")
	}
	if !cfg.BuildOnly && cfg.APIURL == "" {
		return nil, errors.New("APIURL is required unless running with build-only")
	}
	return &cfg, nil
}
