// Package qdrant is a minimal REST client to a hosted Qdrant index.
// It assumes cosine distance and creates the collection if missing.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"docchat/internal/domain"
)

type Store struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Store) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	// Create collection if not exists; Qdrant returns 200 OK when the
	// collection already exists with the same schema.
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	points := make([]map[string]any, len(chunks))
	for i := range chunks {
		points[i] = map[string]any{
			"id":     chunks[i].ID,
			"vector": vectors[i],
			"payload": map[string]any{
				"document_id": chunks[i].DocumentID,
				"page":        chunks[i].Page,
				"index":       chunks[i].Index,
				"text":        chunks[i].Text,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

func (s *Store) Search(ctx context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		chunk := domain.Chunk{}
		if v, ok := r.ID.(string); ok {
			chunk.ID = v
		}
		if v, ok := r.Payload["document_id"].(string); ok {
			chunk.DocumentID = v
		}
		if v, ok := r.Payload["page"].(float64); ok {
			chunk.Page = int(v)
		}
		if v, ok := r.Payload["index"].(float64); ok {
			chunk.Index = int(v)
		}
		if v, ok := r.Payload["text"].(string); ok {
			chunk.Text = v
		}
		results = append(results, domain.SearchResult{Chunk: chunk, Score: r.Score})
	}
	return results, nil
}

func (s *Store) Clear(ctx context.Context) error {
	// Best-effort: drop collection
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return err
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *Store) putJSON(ctx context.Context, url string, body any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
