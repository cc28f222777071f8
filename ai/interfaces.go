package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ScorePair is one (query, document) pair submitted for joint relevance scoring.
type ScorePair struct {
	Query    string
	Document string
}

// CrossEncoder jointly scores (query, document) pairs. Scores are real-valued
// and model-dependent in range; only their relative order is meaningful.
// Implementations must be thread-safe for concurrent use.
type CrossEncoder interface {
	// Predict scores every pair in one batched call.
	// The returned slice contains one score per pair, in input order.
	// Returns an error if scoring fails; callers are expected to degrade
	// rather than propagate.
	Predict(ctx context.Context, pairs []ScorePair) ([]float64, error)
}

// Generator produces free text from a prompt. Used for query expansion.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Complete generates a completion for the prompt at the given temperature.
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder, CrossEncoder, and
// Generator instances, ensuring they share configuration appropriately.
// All returned services are long-lived and safe for concurrent use.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// CrossEncoder returns the joint relevance scoring service.
	CrossEncoder() CrossEncoder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
