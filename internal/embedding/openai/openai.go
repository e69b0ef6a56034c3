// Package openai implements the cloud embedder against an OpenAI-compatible API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// Client is an OpenAI-compatible embeddings client.
// Failures are reported to the caller, not retried; the chat loop treats a
// failed question as all-or-nothing.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

// Config configures the embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
}

// NewClient creates a new embeddings client using the provided configuration.
// The cloud path relies on provider-default timeouts.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  key,
		model:   cfg.Model,
		client:  &http.Client{},
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai" }

// Dimension returns the dimensionality of the produced vectors.
// It is zero until the first successful Embed call.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	body := struct {
		Input string `json:"input"`
		Model string `json:"model"`
	}{Input: text, Model: c.model}
	data, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embeddings API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embeddings API failed: %s", resp.Status)
	}

	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding embeddings response: %w", err)
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	v := out.Data[0].Embedding
	if c.dimension == 0 {
		c.dimension = len(v)
	}
	return v, nil
}
