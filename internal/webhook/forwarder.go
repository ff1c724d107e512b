// Package webhook proxies payloads to the external workflow-automation
// endpoint. The call is an opaque passthrough: forward(payload) -> response
// or failure, never retried here.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBytes caps how much of the automation response is relayed back.
const maxResponseBytes = 1 << 20

// Forwarder posts JSON payloads to a fixed webhook URL.
type Forwarder struct {
	url   string
	httpc *http.Client
}

// NewForwarder creates a Forwarder for the given webhook URL.
func NewForwarder(url string) *Forwarder {
	return &Forwarder{
		url:   url,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

// Forward posts the payload and returns the webhook's response body.
func (f *Forwarder) Forward(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook forward: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("webhook response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("webhook forward: status %d", resp.StatusCode)
	}
	return body, nil
}
