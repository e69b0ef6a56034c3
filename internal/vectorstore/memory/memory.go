// Package memory is an in-memory vector store using brute-force cosine
// similarity, used for local runs and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"docchat/internal/domain"
)

type Store struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	chunks    []domain.Chunk
}

func NewStore() *Store { return &Store{} }

func (s *Store) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.chunks = nil
	return nil
}

func (s *Store) Upsert(_ context.Context, chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *Store) Search(_ context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	// vectors are assumed L2-normalized, so the dot product is the cosine
	results := make([]domain.SearchResult, 0, len(s.vectors))
	for i := range s.vectors {
		results = append(results, domain.SearchResult{Chunk: s.chunks[i], Score: dot(s.vectors[i], vector)})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.chunks = nil
	return nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
