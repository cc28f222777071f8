package rerank

import (
	"fmt"
	"math"

	"github.com/poiesic/resumerank/core"
)

// Weights blends the two normalized relevance signals in hybrid scoring.
type Weights struct {
	Retrieval float64
	Rerank    float64
}

// DefaultWeights favors the cross-encoder over the initial similarity.
func DefaultWeights() Weights {
	return Weights{Retrieval: 0.3, Rerank: 0.7}
}

// Validate checks that both weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.Retrieval < 0 || w.Rerank < 0 {
		return fmt.Errorf("%w: weights must be non-negative, got retrieval=%v rerank=%v",
			core.ErrInvalidWeights, w.Retrieval, w.Rerank)
	}
	if math.Abs(w.Retrieval+w.Rerank-1.0) > 1e-6 {
		return fmt.Errorf("%w: weights must sum to 1, got %v",
			core.ErrInvalidWeights, w.Retrieval+w.Rerank)
	}
	return nil
}
