// Package history keeps the rolling conversation transcript.
package history

import (
	"fmt"
	"strings"
	"time"

	"docchat/internal/domain"
)

// EmptySentinel is returned by Format when no turns have been recorded.
const EmptySentinel = "No conversation history yet."

// DefaultLimit is the number of turns retained.
const DefaultLimit = 5

// Buffer is a bounded FIFO of the most recent question/answer turns.
// It is owned by the single control loop; no locking.
type Buffer struct {
	limit int
	turns []domain.Turn
}

// NewBuffer creates a buffer retaining at most limit turns.
func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Buffer{limit: limit}
}

// Append inserts a turn at the tail, evicting the oldest turn past the limit.
func (b *Buffer) Append(turn domain.Turn) {
	if turn.AskedAt.IsZero() {
		turn.AskedAt = time.Now()
	}
	b.turns = append(b.turns, turn)
	if len(b.turns) > b.limit {
		b.turns = b.turns[len(b.turns)-b.limit:]
	}
}

// Len returns the number of retained turns.
func (b *Buffer) Len() int { return len(b.turns) }

// Turns returns a copy of the retained turns, oldest first.
func (b *Buffer) Turns() []domain.Turn {
	out := make([]domain.Turn, len(b.turns))
	copy(out, b.turns)
	return out
}

// Clear removes all turns.
func (b *Buffer) Clear() { b.turns = nil }

// Format renders the turns as a numbered transcript, oldest first,
// or the empty sentinel when there is nothing to show.
func (b *Buffer) Format() string {
	if len(b.turns) == 0 {
		return EmptySentinel
	}
	var sb strings.Builder
	for i, t := range b.turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. Q: %s\n   A: %s", i+1, t.Question, t.Answer)
	}
	return sb.String()
}
