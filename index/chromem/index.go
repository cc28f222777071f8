package chromem

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/philippgille/chromem-go"
	"github.com/poiesic/resumerank/index"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "chunks"

// Index implements index.Index using the embedded chromem-go vector database.
// Documents always carry precomputed embeddings, so no embedding function is
// registered with the underlying collection.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	logger     *slog.Logger
}

var _ index.Index = (*Index)(nil)

// Option configures an Index.
type Option func(*options)

type options struct {
	collection string
	logger     *slog.Logger
}

// WithCollection sets the collection name. Default is DefaultCollection.
func WithCollection(name string) Option {
	return func(o *options) {
		if name != "" {
			o.collection = name
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open opens (or creates) a persistent index at the given directory.
func Open(path string, opts ...Option) (*Index, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector database: %w", err)
	}
	return newIndex(db, opts...)
}

// NewMemory creates a volatile in-memory index. Intended for tests and
// short-lived scoring runs.
func NewMemory(opts ...Option) (*Index, error) {
	return newIndex(chromem.NewDB(), opts...)
}

func newIndex(db *chromem.DB, opts ...Option) (*Index, error) {
	o := &options{
		collection: DefaultCollection,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	collection, err := db.GetOrCreateCollection(o.collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %q: %w", o.collection, err)
	}

	return &Index{
		db:         db,
		collection: collection,
		logger:     o.logger.With("component", "chromem-index"),
	}, nil
}

// Upsert inserts or replaces documents by ID.
func (ix *Index) Upsert(ctx context.Context, docs ...index.Document) error {
	if len(docs) == 0 {
		return nil
	}

	rows := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		if doc.ID == "" {
			return index.ErrMissingID
		}
		rows[i] = chromem.Document{
			ID:        doc.ID,
			Content:   doc.Content,
			Metadata:  doc.Metadata,
			Embedding: doc.Embedding,
		}
	}

	ix.logger.Debug("upserting documents", "count", len(rows))
	if err := ix.collection.AddDocuments(ctx, rows, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Query returns up to k documents most similar to the embedding.
// k is clamped to the collection size; an empty collection yields no results.
func (ix *Index) Query(ctx context.Context, embedding []float32, k int, filter map[string]string) ([]index.Result, error) {
	if len(embedding) == 0 {
		return nil, index.ErrEmptyEmbedding
	}
	if k <= 0 {
		return []index.Result{}, nil
	}

	// chromem rejects nResults larger than the collection.
	if count := ix.collection.Count(); k > count {
		k = count
	}
	if k == 0 {
		return []index.Result{}, nil
	}

	hits, err := ix.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: embedding,
		NResults:       k,
		Where:          filter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	results := make([]index.Result, len(hits))
	for i, hit := range hits {
		results[i] = index.Result{
			ID:         hit.ID,
			Content:    hit.Content,
			Metadata:   hit.Metadata,
			Similarity: hit.Similarity,
		}
	}
	return results, nil
}

// Delete removes documents by ID.
func (ix *Index) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	ix.logger.Debug("deleting documents", "count", len(ids))
	if err := ix.collection.Delete(ctx, nil, nil, ids...); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// DeleteWhere removes every document whose metadata matches the filter.
func (ix *Index) DeleteWhere(ctx context.Context, filter map[string]string) error {
	if len(filter) == 0 {
		return index.ErrEmptyFilter
	}
	ix.logger.Debug("deleting documents by filter", "filter", filter)
	if err := ix.collection.Delete(ctx, filter, nil); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// Count returns the number of documents in the collection.
func (ix *Index) Count() int {
	return ix.collection.Count()
}

// Close releases resources held by the index.
// chromem persists on write, so no flush is needed here.
func (ix *Index) Close() error {
	return nil
}
