// Package prompt renders the fixed chat prompt template.
package prompt

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// ContextDelimiter separates retrieved chunk texts inside the prompt.
const ContextDelimiter = "\n---\n"

const template = `You are a helpful assistant. Answer the question using only the provided context and the conversation history.

Conversation history:
%HISTORY%

Context:
%CONTEXT%

Question: %QUESTION%

Answer:`

// Composer renders {history, context, question} into the fixed template,
// dropping the lowest-ranked context chunks once the rendered prompt would
// exceed the token budget.
type Composer struct {
	budget int
	enc    *tiktoken.Tiktoken
}

// NewComposer creates a composer with the given token budget. A budget of 0
// disables trimming. Token counting falls back to a character heuristic when
// the encoding cannot be loaded.
func NewComposer(tokenBudget int) *Composer {
	c := &Composer{budget: tokenBudget}
	if tokenBudget > 0 {
		if enc, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
			c.enc = enc
		}
	}
	return c
}

// Render substitutes the parts into the template. Contexts must be ordered by
// descending similarity; trimming removes from the tail.
func (c *Composer) Render(history string, contexts []string, question string) string {
	for len(contexts) > 1 && c.budget > 0 {
		rendered := c.render(history, contexts, question)
		if c.countTokens(rendered) <= c.budget {
			return rendered
		}
		contexts = contexts[:len(contexts)-1]
	}
	return c.render(history, contexts, question)
}

func (c *Composer) render(history string, contexts []string, question string) string {
	out := strings.ReplaceAll(template, "%HISTORY%", history)
	out = strings.ReplaceAll(out, "%CONTEXT%", strings.Join(contexts, ContextDelimiter))
	return strings.ReplaceAll(out, "%QUESTION%", question)
}

func (c *Composer) countTokens(text string) int {
	if c.enc == nil {
		// rough heuristic: one token per four characters
		return len(text) / 4
	}
	return len(c.enc.Encode(text, nil, nil))
}
