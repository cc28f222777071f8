package mock

import (
	"context"
	"hash/fnv"

	"github.com/poiesic/resumerank/ai"
)

// MockCrossEncoder is a test double for ai.CrossEncoder.
// It allows custom behavior injection via function fields.
type MockCrossEncoder struct {
	// PredictFunc is called by Predict if set.
	// If nil, uses default deterministic behavior.
	PredictFunc func(ctx context.Context, pairs []ai.ScorePair) ([]float64, error)

	callCount int
}

// NewMockCrossEncoder creates a mock cross-encoder with default deterministic
// behavior. Note: Returns concrete type to allow test assertions.
func NewMockCrossEncoder() *MockCrossEncoder {
	return &MockCrossEncoder{}
}

// Predict returns one deterministic score per pair derived from the pair's
// content hash, in the range [0, 10).
func (m *MockCrossEncoder) Predict(ctx context.Context, pairs []ai.ScorePair) ([]float64, error) {
	m.callCount++

	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, pairs)
	}

	scores := make([]float64, len(pairs))
	for i, pair := range pairs {
		h := fnv.New32a()
		h.Write([]byte(pair.Query))
		h.Write([]byte{0})
		h.Write([]byte(pair.Document))
		scores[i] = float64(h.Sum32()%10000) / 1000.0
	}
	return scores, nil
}

// CallCount returns the number of times Predict was called.
func (m *MockCrossEncoder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockCrossEncoder) Reset() {
	m.callCount = 0
	m.PredictFunc = nil
}
