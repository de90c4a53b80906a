// Package ai implements the oracle client for the Ollama generate API.
//
// The oracle is treated as untrusted and fallible: a transport error, a
// non-2xx status, or a body that does not decode all collapse to an error
// the caller interprets as "no result". Nothing here retries.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/ports"
)

// generateRequest is the wire format of POST /api/generate.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse carries the fields we read back. The service returns
// more; everything else is ignored.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Client talks to a single oracle endpoint. The endpoint and HTTP client
// are fixed at construction and never change.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        ports.Logger
}

// NewClient builds an oracle client from the oracle settings. When a SOCKS
// proxy address is configured, all traffic is routed through it.
func NewClient(cfg domain.OracleSettings, log ports.Logger) (*Client, error) {
	timeout := domain.DefaultOracleTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.SocksProxy != "" {
		proxied, err := newSocksClient(cfg.SocksProxy, timeout)
		if err != nil {
			return nil, fmt.Errorf("dial socks proxy %s: %w", cfg.SocksProxy, err)
		}
		httpClient = proxied
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
		log:        log,
	}, nil
}

// Generate implements ports.Oracle. Streaming is always disabled; the
// session loop has no use for partial replies.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("querying oracle", map[string]interface{}{
		"endpoint": c.endpoint,
		"model":    model,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("oracle HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return decoded.Response, nil
}

var _ ports.Oracle = (*Client)(nil)
