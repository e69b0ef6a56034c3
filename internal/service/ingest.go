package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docchat/internal/domain"
)

const uploadBatchSize = 128

// Ingestor runs the one-shot upload: load document, window-chunk pages, embed
// every chunk and upsert to the vector index. Any failure aborts the batch.
type Ingestor struct {
	loader      domain.Loader
	chunker     domain.Chunker
	embedder    domain.Embedder
	store       domain.VectorStore
	log         *zap.SugaredLogger
	concurrency int
}

func NewIngestor(
	loader domain.Loader,
	chunker domain.Chunker,
	embedder domain.Embedder,
	store domain.VectorStore,
	log *zap.SugaredLogger,
	concurrency int,
) *Ingestor {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Ingestor{
		loader:      loader,
		chunker:     chunker,
		embedder:    embedder,
		store:       store,
		log:         log,
		concurrency: concurrency,
	}
}

// Ingest processes one document and returns the number of chunks uploaded.
func (g *Ingestor) Ingest(ctx context.Context, path string) (int, error) {
	doc, err := g.loader.Load(path)
	if err != nil {
		return 0, fmt.Errorf("loading document: %w", err)
	}
	chunks, err := g.chunker.Chunk(doc)
	if err != nil {
		return 0, fmt.Errorf("chunking document: %w", err)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document %s produced no chunks", path)
	}
	g.log.Infow("chunked document", "path", path, "pages", len(doc.Pages), "chunks", len(chunks))

	// Probe the first chunk synchronously so the embedder learns its
	// dimension before concurrent work starts.
	vectors := make([][]float64, len(chunks))
	if vectors[0], err = g.embedder.Embed(ctx, chunks[0].Text); err != nil {
		return 0, fmt.Errorf("embedding chunk 0: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i := 1; i < len(chunks); i++ {
		i := i
		eg.Go(func() error {
			vec, err := g.embedder.Embed(egCtx, chunks[i].Text)
			if err != nil {
				return fmt.Errorf("embedding chunk %d: %w", i, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	if err := g.store.Init(ctx, g.embedder.Dimension()); err != nil {
		return 0, fmt.Errorf("initializing index: %w", err)
	}

	up, upCtx := errgroup.WithContext(ctx)
	up.SetLimit(g.concurrency)
	for start := 0; start < len(chunks); start += uploadBatchSize {
		end := start + uploadBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		start, end := start, end
		up.Go(func() error {
			return g.store.Upsert(upCtx, chunks[start:end], vectors[start:end])
		})
	}
	if err := up.Wait(); err != nil {
		return 0, fmt.Errorf("uploading chunks: %w", err)
	}
	return len(chunks), nil
}
