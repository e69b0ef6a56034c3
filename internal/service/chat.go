// Package service contains the retrieval-and-answer and ingestion operations.
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"docchat/internal/domain"
	"docchat/internal/history"
	"docchat/internal/prompt"
)

// NoContextReply is shown when retrieval produces nothing usable.
const NoContextReply = "No relevant documents found for your question."

// Reply is the outcome of one question. FromModel is false when retrieval
// short-circuited and the chat model was never invoked.
type Reply struct {
	Text      string
	FromModel bool
	Sources   []domain.SearchResult
}

// ChatService answers questions over the indexed document. Each question is
// all-or-nothing: any failure leaves the history untouched.
type ChatService struct {
	embedder  domain.Embedder
	store     domain.VectorStore
	completer domain.Completer
	composer  *prompt.Composer
	log       *zap.SugaredLogger
	topK      int
}

func NewChatService(
	embedder domain.Embedder,
	store domain.VectorStore,
	completer domain.Completer,
	composer *prompt.Composer,
	log *zap.SugaredLogger,
	topK int,
) *ChatService {
	if topK <= 0 {
		topK = 5
	}
	return &ChatService{
		embedder:  embedder,
		store:     store,
		completer: completer,
		composer:  composer,
		log:       log,
		topK:      topK,
	}
}

// Ask embeds the question, retrieves the top-K chunks, composes the prompt
// with the formatted history and invokes the chat model once. On success the
// turn is appended to hist; on any failure hist is left unchanged.
func (s *ChatService) Ask(ctx context.Context, question string, hist *history.Buffer) (Reply, error) {
	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		s.log.Errorw("embedding question failed", "error", err)
		return Reply{}, err
	}

	results, err := s.store.Search(ctx, vec, s.topK)
	if err != nil {
		s.log.Errorw("vector search failed", "error", err)
		return Reply{}, err
	}
	if len(results) == 0 {
		s.log.Infow("no matches for question")
		return Reply{Text: NoContextReply}, nil
	}

	// Results arrive in descending similarity order; keep only non-empty text.
	contexts := make([]string, 0, len(results))
	kept := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if strings.TrimSpace(r.Chunk.Text) == "" {
			continue
		}
		contexts = append(contexts, r.Chunk.Text)
		kept = append(kept, r)
	}
	if len(contexts) == 0 {
		s.log.Infow("matches carried no text payload")
		return Reply{Text: NoContextReply}, nil
	}

	rendered := s.composer.Render(hist.Format(), contexts, question)
	answer, err := s.completer.Complete(ctx, rendered)
	if err != nil {
		s.log.Errorw("chat completion failed", "error", err)
		return Reply{}, err
	}

	hist.Append(domain.Turn{Question: question, Answer: answer, AskedAt: time.Now()})
	return Reply{Text: answer, FromModel: true, Sources: kept}, nil
}
