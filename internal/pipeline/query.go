package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avolkov/pdfrag/internal/composer"
	"github.com/avolkov/pdfrag/internal/ollama"
	"github.com/avolkov/pdfrag/internal/retrieval"
)

// Sentinel errors for the query path. Callers match them with errors.Is to
// choose the right user-facing message.
var (
	ErrDatabaseNotFound = errors.New("vector database not found")
	ErrDatabaseEmpty    = errors.New("vector database is empty")
	ErrNoRelevantChunks = errors.New("no relevant chunks found")
)

// ChatClient generates an answer from a list of chat messages.
type ChatClient interface {
	Chat(ctx context.Context, model string, messages []ollama.Message) (string, error)
}

// Answerer runs the full query pipeline: embed the question, search the
// vector store, build a prompt from the hits, and ask the generation model.
type Answerer struct {
	retriever     *retrieval.Retriever
	store         retrieval.VectorStore
	composer      *composer.Composer
	chat          ChatClient
	queryModel    string
	collection    string
	topK          int
	minSimilarity float32
	logger        *slog.Logger
}

// AnswererConfig carries the knobs for a query run.
type AnswererConfig struct {
	QueryModel    string
	Collection    string
	TopK          int
	MinSimilarity float32
}

// NewAnswerer wires the query pipeline together.
func NewAnswerer(retriever *retrieval.Retriever, store retrieval.VectorStore, comp *composer.Composer, chat ChatClient, cfg AnswererConfig, logger *slog.Logger) *Answerer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Answerer{
		retriever:     retriever,
		store:         store,
		composer:      comp,
		chat:          chat,
		queryModel:    cfg.QueryModel,
		collection:    cfg.Collection,
		topK:          cfg.TopK,
		minSimilarity: cfg.MinSimilarity,
		logger:        logger,
	}
}

// Answer resolves a question against the stored chunks. When every chunk
// falls below the similarity threshold the generation model is never called
// and ErrNoRelevantChunks is returned.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	count, err := a.store.Count(ctx, a.collection)
	if err != nil {
		return "", fmt.Errorf("counting stored chunks: %w", err)
	}
	if count == 0 {
		return "", ErrDatabaseEmpty
	}

	start := time.Now()
	chunks, err := a.retriever.Retrieve(ctx, a.collection, question, a.topK, a.minSimilarity)
	if err != nil {
		return "", fmt.Errorf("retrieving chunks: %w", err)
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w (all chunks below similarity threshold %g)",
			ErrNoRelevantChunks, a.minSimilarity)
	}

	a.logger.Debug("retrieved chunks",
		"count", len(chunks), "best_score", chunks[0].Score,
		"duration_ms", time.Since(start).Milliseconds())

	prompt := a.composer.Compose(question, chunks)
	answer, err := a.chat.Chat(ctx, a.queryModel, []ollama.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("%w (model returned an empty answer)", ErrNoRelevantChunks)
	}
	return answer, nil
}
