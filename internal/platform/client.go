// Package platform is the HTTP client for the external orchestration
// platform's registration API. It is the single point where the core crosses
// a process boundary; everything else is pure in-memory composition.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/perfectlabs/deployergo/internal/ctxlog"
	"github.com/perfectlabs/deployergo/internal/deployment"
)

// maxErrorBody caps how much of an error response is echoed into messages.
const maxErrorBody = 4 << 10

// Client submits deployment specifications to the orchestration platform.
// It implements deployment.Applier. The client performs no retries; retry
// and backoff policy belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a platform client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register submits the specification to the platform's deployment endpoint.
// A non-2xx response is an error carrying the status and response body.
func (c *Client) Register(ctx context.Context, spec *deployment.Spec) error {
	logger := ctxlog.FromContext(ctx)

	body, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to encode deployment %q: %w", spec.Name(), err)
	}

	url := c.baseURL + "/api/deployments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create platform request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Info("Submitting deployment to platform.", "deployment", spec.Name(), "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("platform rejected deployment %q: %s: %s", spec.Name(), resp.Status, strings.TrimSpace(string(msg)))
	}

	logger.Info("Deployment registered.", "deployment", spec.Name(), "status", resp.Status)
	return nil
}
