package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func page(text string) domain.Document {
	return domain.Document{ID: "doc1", Pages: []domain.Page{{Number: 1, Text: text}}}
}

func TestWindowChunker_SinglePageWithOverlap(t *testing.T) {
	// 2500 characters at size 1000 / overlap 200 must produce exactly 3 chunks.
	text := strings.Repeat("x", 2500)
	c := NewWindowChunker(1000, 200)

	chunks, err := c.Chunk(page(text))
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	for _, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Text), 1000)
	}
	assert.Len(t, chunks[0].Text, 1000)
	assert.Len(t, chunks[1].Text, 1000)
	assert.Len(t, chunks[2].Text, 900)
}

func TestWindowChunker_ConsecutiveChunksShareOverlap(t *testing.T) {
	// Distinct characters so the shared region is position-exact.
	var sb strings.Builder
	for i := 0; i < 2500; i++ {
		sb.WriteByte(byte('a' + i%26))
	}
	c := NewWindowChunker(1000, 200)

	chunks, err := c.Chunk(page(sb.String()))
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Text
		assert.Equal(t, prev[len(prev)-200:], chunks[i].Text[:200])
	}
}

func TestWindowChunker_ShortTextSingleChunk(t *testing.T) {
	c := NewWindowChunker(1000, 200)
	chunks, err := c.Chunk(page("short text"))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 1, chunks[0].Page)
}

func TestWindowChunker_EmptyPagesSkipped(t *testing.T) {
	doc := domain.Document{ID: "doc1", Pages: []domain.Page{
		{Number: 1, Text: "   \n  "},
		{Number: 2, Text: "content here"},
	}}
	c := NewWindowChunker(1000, 200)

	chunks, err := c.Chunk(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 2, chunks[0].Page)
}

func TestWindowChunker_IndexMonotonicAcrossPages(t *testing.T) {
	doc := domain.Document{ID: "doc1", Pages: []domain.Page{
		{Number: 1, Text: strings.Repeat("a", 1500)},
		{Number: 2, Text: strings.Repeat("b", 1500)},
	}}
	c := NewWindowChunker(1000, 200)

	chunks, err := c.Chunk(doc)
	require.NoError(t, err)
	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
		assert.NotEmpty(t, ch.ID)
		assert.Equal(t, "doc1", ch.DocumentID)
	}
}

func TestWindowChunker_DefaultsOnBadArguments(t *testing.T) {
	c := NewWindowChunker(0, -5)
	chunks, err := c.Chunk(page(strings.Repeat("y", 1200)))
	require.NoError(t, err)
	// size defaults to 1000, overlap clamps to 0
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0].Text, 1000)
	assert.Len(t, chunks[1].Text, 200)
}
