package mock

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

const mockEmbeddingDim = 384

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText derives a deterministic pseudo-embedding from the text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	return embedVector(text, mockEmbeddingDim), nil
}

// EmbedTexts derives deterministic pseudo-embeddings for a chunk batch.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = embedVector(text, mockEmbeddingDim)
	}
	return embeddings, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// embedVector builds a deterministic unit vector from text. Texts sharing
// vocabulary get correlated vectors, so a resume chunk mentioning a skill
// lands near a job description asking for it. Identical text always maps to
// the identical vector.
func embedVector(text string, dim int) []float32 {
	vector := make([]float32, dim)

	// Each token spreads weight over a hashed band of components, so
	// overlapping words pull two vectors together.
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		seed := h.Sum32()
		for j := 0; j < 8; j++ {
			seed = seed*1664525 + 1013904223 // LCG constants
			vector[seed%uint32(dim)] += float32(seed%1000) / 1000.0
		}
	}

	// Whole-text noise keeps texts with identical vocabulary apart.
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()
	for i := range vector {
		seed = seed*1664525 + 1013904223
		vector[i] += float32(seed%97) / 970.0
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		norm := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
