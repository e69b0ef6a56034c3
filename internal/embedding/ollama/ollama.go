// Package ollama implements the local embedder against the Ollama API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client calls a local Ollama server's /api/embeddings endpoint.
type Client struct {
	baseURL   string
	model     string
	dimension int
	client    *http.Client
}

// Config configures the Ollama embeddings client.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClient creates a new Ollama embeddings client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "nomic-embed-text"
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

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "ollama" }

// Dimension returns the dimensionality of the produced vectors.
// It is zero until the first successful Embed call.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	body := struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	}{Model: c.model, Prompt: text}
	data, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embeddings", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama embeddings failed: %s", resp.Status)
	}

	var out struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding ollama response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	if c.dimension == 0 {
		c.dimension = len(out.Embedding)
	}
	return out.Embedding, nil
}
