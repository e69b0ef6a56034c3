package chunker

import (
	"strings"

	"github.com/google/uuid"

	"docchat/internal/domain"
)

// WindowChunker splits page text into fixed-size character windows with overlap.
// Windows are exact: consecutive chunks share exactly overlap characters, so
// the chunk boundaries are reproducible across runs.
type WindowChunker struct {
	size    int
	overlap int
}

func NewWindowChunker(size, overlap int) *WindowChunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return &WindowChunker{size: size, overlap: overlap}
}

func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	idx := 0
	for _, page := range document.Pages {
		text := []rune(strings.TrimSpace(page.Text))
		if len(text) == 0 {
			continue
		}
		start := 0
		for {
			end := start + c.size
			if end > len(text) {
				end = len(text)
			}
			chunks = append(chunks, domain.Chunk{
				ID:         uuid.NewString(),
				DocumentID: document.ID,
				Text:       string(text[start:end]),
				Page:       page.Number,
				Index:      idx,
			})
			idx++
			if end == len(text) {
				break
			}
			start = end - c.overlap
		}
	}
	return chunks, nil
}
