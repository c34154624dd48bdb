package retrieval

import (
	"context"
	"time"
)

// VectorStore is the interface for vector storage and similarity search
// backends. The default implementation uses SQLite with brute-force cosine
// similarity; the collection parameter names a logical partition within the
// store.
type VectorStore interface {
	// Insert adds records to the given collection. Records whose
	// (source file, content) pair already exists in the collection are
	// silently skipped; the returned count is the number actually added.
	Insert(ctx context.Context, collection string, records []Record) (int, error)

	// ContentsBySource returns the set of chunk contents already stored in
	// the collection for the given source file. Used to count duplicates
	// before paying for embeddings.
	ContentsBySource(ctx context.Context, collection, sourceFile string) (map[string]bool, error)

	// Search returns up to topK records ordered by descending cosine
	// similarity, excluding any that score below minSimilarity. An empty
	// result is not an error.
	Search(ctx context.Context, collection string, vector []float32, topK int, minSimilarity float32) ([]ScoredRecord, error)

	// Count returns the number of records in the collection.
	Count(ctx context.Context, collection string) (int, error)
}

// Record represents a stored document chunk with its embedding.
type Record struct {
	ID         string
	SourceFile string
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}

// ScoredRecord is a Record with a similarity score attached.
type ScoredRecord struct {
	Record
	Score float32
}
