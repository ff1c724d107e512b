// Package ai provides the client for the external text-generation service.
// The rest of the application treats it as an opaque evaluate(prompt) -> text
// call.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls a completion-style HTTP endpoint. Failures surface to the
// caller unchanged; there is no internal retry.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	httpc    *http.Client
}

// NewClient creates a Client for the given endpoint.
func NewClient(endpoint, apiKey, model string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

type completionRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// Evaluate sends the prompt and returns the generated text.
func (c *Client) Evaluate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ai request: status %d: %s", resp.StatusCode, snippet)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ai response: %w", err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("ai response: empty text")
	}
	return out.Text, nil
}
