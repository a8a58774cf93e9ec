package folio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration for the relay client.
type Config struct {
	// BaseURL is the root URL of the relay, e.g. "https://api.example.com".
	// A trailing "/api" is accepted and stripped.
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with a 45s timeout is used, long enough to
	// cover both sequential sends on the server.
	HTTPClient *http.Client

	// UserAgent is sent with every request. Default: "folio-go"
	UserAgent string
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 45 * time.Second}
	}
	if c.UserAgent == "" {
		c.UserAgent = "folio-go"
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/api")
}

// Client calls the contact relay API.
type Client struct {
	cfg Config
}

// NewClient creates a new client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// Submit posts a contact submission. A nil error means both the owner
// notification and the auto-reply were accepted by the mail provider.
func (c *Client) Submit(ctx context.Context, req ContactRequest) (*ContactResponse, error) {
	var resp ContactResponse
	if err := c.do(ctx, http.MethodPost, "/api/contact", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health returns the relay's health report.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Keepalive pings the relay so an idle host does not sleep.
func (c *Client) Keepalive(ctx context.Context) (*KeepaliveResponse, error) {
	var resp KeepaliveResponse
	if err := c.do(ctx, http.MethodGet, "/api/keepalive", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("folio: failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("folio: failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("folio: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("folio: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("folio: failed to parse response: %w", err)
	}
	return nil
}
