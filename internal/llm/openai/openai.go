// Package openai implements the cloud completer against an OpenAI-compatible
// chat completions API.
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

// Client sends a single non-streaming chat completion per prompt.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// Config configures the chat completions client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
}

// NewClient creates a new chat completions client.
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
		cfg.Model = "gpt-4o-mini"
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  key,
		model:   cfg.Model,
		client:  &http.Client{},
	}, nil
}

// Name returns the identifier of this completer implementation.
func (c *Client) Name() string { return "openai" }

// Complete sends the prompt as a single user message and returns the
// assistant's plain-text reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	body := struct {
		Model    string    `json:"model"`
		Messages []message `json:"messages"`
	}{
		Model:    c.model,
		Messages: []message{{Role: "user", Content: prompt}},
	}
	data, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat API failed: %s", resp.Status)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return out.Choices[0].Message.Content, nil
}
