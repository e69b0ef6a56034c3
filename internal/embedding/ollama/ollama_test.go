package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "test-model", req["model"])
		assert.Equal(t, "hello", req["prompt"])
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "test-model"})
	vec, err := c.Embed(context.Background(), "hello")

	require.NoError(t, err)
	assert.Len(t, vec, 3)
	assert.Equal(t, 3, c.Dimension())
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	_, err := c.Embed(context.Background(), "text")
	assert.Error(t, err)
}

func TestClient_EmptyEmbeddingRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{}})
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	_, err := c.Embed(context.Background(), "text")
	assert.Error(t, err)
}

func TestClient_Defaults(t *testing.T) {
	c := NewClient(Config{})
	assert.Equal(t, "http://localhost:11434", c.baseURL)
	assert.Equal(t, "nomic-embed-text", c.model)
	assert.Equal(t, 30*time.Second, c.client.Timeout)
	assert.Equal(t, "ollama", c.Name())
}
