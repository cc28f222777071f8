package retrieve

import "github.com/poiesic/resumerank/core"

// Stats summarizes one merged candidate list.
type Stats struct {
	Candidates   int
	DirectHits   int
	ExpandedOnly int // surfaced only by hypothetical passes
	Corroborated int // surfaced by more than one pass
	MinScore     float64
	MaxScore     float64
	MeanScore    float64
}

// Summarize computes summary statistics over a candidate list.
func Summarize(candidates []core.RetrievalCandidate) Stats {
	stats := Stats{Candidates: len(candidates)}
	if len(candidates) == 0 {
		return stats
	}

	stats.MinScore = candidates[0].Score
	stats.MaxScore = candidates[0].Score
	var sum float64

	for _, c := range candidates {
		if c.Direct {
			stats.DirectHits++
		} else {
			stats.ExpandedOnly++
		}
		if c.Frequency > 1 {
			stats.Corroborated++
		}
		if c.Score < stats.MinScore {
			stats.MinScore = c.Score
		}
		if c.Score > stats.MaxScore {
			stats.MaxScore = c.Score
		}
		sum += c.Score
	}

	stats.MeanScore = sum / float64(len(candidates))
	return stats
}
