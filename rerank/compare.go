package rerank

import "github.com/poiesic/resumerank/core"

// Comparison measures how much reranking reshuffled the retrieval order.
type Comparison struct {
	// Moved counts chunks whose rank differs from their retrieval rank.
	Moved int
	// Promoted counts chunks that improved their rank.
	Promoted int
	// MaxDisplacement is the largest rank change of any chunk.
	MaxDisplacement int
	// NewInTopK counts ranked chunks absent from the baseline entirely.
	NewInTopK int
}

// CompareWithBaseline diffs a ranked list against the retrieval-ordered
// baseline it came from. It is a diagnostic for judging whether the
// cross-encoder is earning its latency.
func CompareWithBaseline(baseline []core.RetrievalCandidate, ranked []core.RankedChunk) Comparison {
	baseRank := make(map[string]int, len(baseline))
	for i, c := range baseline {
		baseRank[c.ChunkID] = i
	}

	var cmp Comparison
	for i, rc := range ranked {
		old, ok := baseRank[rc.ChunkID]
		if !ok {
			cmp.NewInTopK++
			continue
		}
		if old == i {
			continue
		}
		cmp.Moved++
		if i < old {
			cmp.Promoted++
		}
		displacement := old - i
		if displacement < 0 {
			displacement = -displacement
		}
		if displacement > cmp.MaxDisplacement {
			cmp.MaxDisplacement = displacement
		}
	}
	return cmp
}
