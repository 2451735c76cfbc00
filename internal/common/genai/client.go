// internal/common/genai/client.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	internalhttp "supplier-search/internal/common/http"
)

var (
	ErrNotConfigured = errors.New("GENAI_NOT_CONFIGURED")
	ErrTimeout       = errors.New("GENAI_TIMEOUT")
	ErrUnavailable   = errors.New("GENAI_UNAVAILABLE")
)

// Config holds connection settings for the GenAI completion API.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the GenAI completion endpoint. It makes exactly one
// attempt per request so callers can fall back quickly.
type Client struct {
	config *Config
	client *internalhttp.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		client: internalhttp.NewClient(config.Timeout),
	}
}

// Complete sends a system instruction and prompt and returns the raw
// completion text. No retries: a slow or flaky upstream must not stall
// the caller, which has a deterministic fallback of its own.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	if c.config.BaseURL == "" || c.config.APIKey == "" {
		return "", ErrNotConfigured
	}

	requestBody := map[string]interface{}{
		"system": system,
		"prompt": prompt,
	}
	if c.config.Model != "" {
		requestBody["model"] = c.config.Model
	}

	body, _ := json.Marshal(requestBody)
	req, err := http.NewRequest("POST", c.config.BaseURL+"/api/ai/complete", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.DoWithContext(ctx, req)
	if err != nil {
		if ctx.Err() != nil ||
			errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	return apiResponse.Text, nil
}
