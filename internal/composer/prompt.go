package composer

import (
	"strings"

	"github.com/avolkov/pdfrag/internal/retrieval"
)

const defaultMaxContextTokens = 4000

const instruction = "Use the following pieces of context to answer the question at the end. " +
	"If you don't know the answer, just say that you don't know, don't try to make up an answer."

// Composer assembles the prompt sent to the generation model from retrieved
// chunks and the user's question. The answer must stand on its own, so the
// prompt carries chunk content only — no source filenames or scores.
type Composer struct {
	MaxContextTokens int
}

// New creates a Composer with the given token budget for injected context.
// If maxContextTokens <= 0, the default (4000) is used.
func New(maxContextTokens int) *Composer {
	if maxContextTokens <= 0 {
		maxContextTokens = defaultMaxContextTokens
	}
	return &Composer{MaxContextTokens: maxContextTokens}
}

// Compose builds the prompt. Chunks are included in the order given (the
// retriever already sorts by descending similarity); chunks that would
// exceed the token budget are dropped.
func (c *Composer) Compose(question string, chunks []retrieval.ScoredRecord) string {
	var sb strings.Builder
	sb.WriteString(instruction)
	sb.WriteString("\n\n")

	remaining := c.MaxContextTokens
	for _, ch := range chunks {
		entry := ch.Content + "\n\n"
		tokens := EstimateTokens(entry)
		if tokens > remaining {
			continue
		}
		sb.WriteString(entry)
		remaining -= tokens
	}

	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\nHelpful Answer:")
	return sb.String()
}

// EstimateTokens provides a rough token count using 4 chars per token heuristic.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
