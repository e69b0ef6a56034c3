package domain

import (
	"context"
	"time"
)

// Document represents a single source file loaded into the system.
type Document struct {
	ID    string
	Path  string
	Pages []Page
}

// Page holds the extracted text of one page of a document.
type Page struct {
	Number int
	Text   string
}

// Chunk is a fixed-size window of page text used for indexing.
type Chunk struct {
	ID         string
	DocumentID string
	Text       string
	Page       int
	Index      int
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string
	Answer   string
	AskedAt  time.Time
}

// Loader reads a source file and extracts page-level text.
type Loader interface {
	Load(path string) (Document, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Embedder converts free text into a numeric vector representation.
// Remote implementations learn their dimension on the first Embed call.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Completer produces a plain-text completion for a rendered prompt.
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// VectorStore persists vectors and supports similarity search.
type VectorStore interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, chunks []Chunk, vectors [][]float64) error
	Search(ctx context.Context, vector []float64, topK int) ([]SearchResult, error)
	Clear(ctx context.Context) error
}
