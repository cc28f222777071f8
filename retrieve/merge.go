package retrieve

import (
	"sort"

	"github.com/poiesic/resumerank/core"
)

// mergePasses deduplicates pass results by chunk ID and applies score boosts.
// Each chunk keeps the best raw score across passes and is tagged with the
// method of that best pass. Frequency counts corroborating passes; the boost
// only rewards passes beyond the first, so a chunk seen once gets none.
// Final scores are clamped to 1.0 and ordering breaks ties by chunk ID.
func mergePasses(passes []pass, config Config, topK int) []core.RetrievalCandidate {
	merged := make(map[string]*core.RetrievalCandidate)

	for _, p := range passes {
		for _, hit := range p.results {
			score := float64(hit.Similarity)
			candidate, ok := merged[hit.ID]
			if !ok {
				merged[hit.ID] = &core.RetrievalCandidate{
					ChunkID:   hit.ID,
					Content:   hit.Content,
					Metadata:  hit.Metadata,
					Score:     score,
					Method:    p.method,
					Frequency: 1,
					Direct:    p.method == core.MethodDirect,
				}
				continue
			}
			candidate.Frequency++
			if p.method == core.MethodDirect {
				candidate.Direct = true
			}
			if score > candidate.Score {
				candidate.Score = score
				candidate.Method = p.method
			}
		}
	}

	candidates := make([]core.RetrievalCandidate, 0, len(merged))
	for _, candidate := range merged {
		boost := float64(candidate.Frequency-1) * config.FrequencyBoost
		if boost > config.FrequencyBoostCap {
			boost = config.FrequencyBoostCap
		}
		if candidate.Direct {
			boost += config.DirectBoost
		}
		candidate.Score += boost
		if candidate.Score > 1.0 {
			candidate.Score = 1.0
		}
		candidates = append(candidates, *candidate)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ChunkID < candidates[j].ChunkID
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}
