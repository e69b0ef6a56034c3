// Package ollama implements the local completer against the Ollama API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client calls a local Ollama server's /api/generate endpoint, non-streaming.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

// Config configures the Ollama completion client.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClient creates a new Ollama completion client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the identifier of this completer implementation.
func (c *Client) Name() string { return "ollama" }

// Complete sends the prompt and returns the generated text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body := struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
		Stream bool   `json:"stream"`
	}{Model: c.model, Prompt: prompt, Stream: false}
	data, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama generate failed: %s", resp.Status)
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding ollama response: %w", err)
	}
	return out.Response, nil
}
