package rerank

import (
	"context"

	"github.com/poiesic/resumerank/core"
)

// Ranker orders retrieval candidates for final presentation. Implementations
// never fail: a ranker that cannot score degrades to input order.
type Ranker interface {
	Rank(ctx context.Context, query string, candidates []core.RetrievalCandidate, topK int) []core.RankedChunk
}

// Passthrough is the Ranker used when reranking is disabled. It preserves
// retrieval order and carries the retrieval score forward as the hybrid score.
type Passthrough struct{}

// Rank converts candidates in place, truncated to topK.
func (Passthrough) Rank(_ context.Context, _ string, candidates []core.RetrievalCandidate, topK int) []core.RankedChunk {
	return passthrough(candidates, topK)
}

func passthrough(candidates []core.RetrievalCandidate, topK int) []core.RankedChunk {
	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}
	ranked := make([]core.RankedChunk, len(candidates))
	for i, c := range candidates {
		ranked[i] = core.RankedChunk{
			RetrievalCandidate: c,
			HybridScore:        c.Score,
		}
	}
	return ranked
}
