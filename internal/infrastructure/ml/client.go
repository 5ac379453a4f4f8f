package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"PharmaNewsAgent/internal/config"
	"PharmaNewsAgent/internal/ports"
)

// Client talks to an external summarization model service over HTTP.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

var _ ports.ModelBackend = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: cfg.Timeout()},
	}
}

// Summarize posts {text, max_length} and decodes {summary}.
func (c *Client) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("summarizer backend misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model":      c.model,
		"text":       text,
		"max_length": maxLength,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("backend error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded struct {
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return decoded.Summary, nil
}
