package index

import "context"

// Document is one embedded chunk stored in the vector index.
type Document struct {
	ID        string
	Content   string
	Metadata  map[string]string
	Embedding []float32
}

// Result is one similarity-search hit.
type Result struct {
	ID       string
	Content  string
	Metadata map[string]string
	// Similarity is the cosine similarity to the query embedding, in [0,1]
	// for normalized vectors.
	Similarity float32
}

// Index is the vector index collaborator contract.
// Implementations own their persistence format and concurrency control;
// callers assume concurrent reads are safe and writes are at least
// serializable per key.
type Index interface {
	// Upsert inserts or replaces documents by ID.
	Upsert(ctx context.Context, docs ...Document) error

	// Query returns up to k documents most similar to the embedding,
	// ordered by similarity descending. A non-nil filter restricts results
	// to documents whose metadata contains every filter entry.
	Query(ctx context.Context, embedding []float32, k int, filter map[string]string) ([]Result, error)

	// Delete removes documents by ID. Unknown IDs are ignored.
	Delete(ctx context.Context, ids ...string) error

	// DeleteWhere removes every document whose metadata contains all filter
	// entries. An empty filter is rejected rather than clearing the index.
	DeleteWhere(ctx context.Context, filter map[string]string) error

	// Count returns the number of documents in the index.
	Count() int

	// Close releases resources held by the index.
	Close() error
}
