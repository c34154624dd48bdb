package retrieval

import (
	"context"
)

// Retriever combines query embedding and vector search to find the chunks
// relevant to a question.
type Retriever struct {
	embedder *Embedder
	store    VectorStore
}

// NewRetriever creates a Retriever backed by the given Embedder and VectorStore.
func NewRetriever(embedder *Embedder, store VectorStore) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Retrieve embeds the query and returns up to topK chunks from the
// collection scoring at or above minSimilarity, ordered by descending
// similarity. An empty result means nothing qualified.
func (r *Retriever) Retrieve(ctx context.Context, collection, query string, topK int, minSimilarity float32) ([]ScoredRecord, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.store.Search(ctx, collection, vec, topK, minSimilarity)
}
