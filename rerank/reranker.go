// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rerank

import (
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/resumerank/ai"
	"github.com/poiesic/resumerank/core"
)

// Reranker scores candidates against the query with a cross-encoder. It
// satisfies Ranker via hybrid scoring.
type Reranker struct {
	scorer         ai.CrossEncoder
	weights        Weights
	degenerateNorm float64
	logger         *slog.Logger
}

// Option configures a Reranker.
type Option func(*Reranker) error

// WithWeights overrides the hybrid blend weights.
func WithWeights(weights Weights) Option {
	return func(r *Reranker) error {
		if err := weights.Validate(); err != nil {
			return err
		}
		r.weights = weights
		return nil
	}
}

// WithDegenerateNorm overrides the normalized value used when a score set is
// all-equal.
func WithDegenerateNorm(value float64) Option {
	return func(r *Reranker) error {
		r.degenerateNorm = value
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// New creates a reranker backed by the given cross-encoder.
func New(scorer ai.CrossEncoder, opts ...Option) (*Reranker, error) {
	r := &Reranker{
		scorer:         scorer,
		weights:        DefaultWeights(),
		degenerateNorm: DefaultDegenerateNorm,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Rank satisfies Ranker using hybrid scoring.
func (r *Reranker) Rank(ctx context.Context, query string, candidates []core.RetrievalCandidate, topK int) []core.RankedChunk {
	return r.RerankHybrid(ctx, query, candidates, topK)
}

// Rerank orders candidates by raw cross-encoder score alone, descending with
// chunk ID tie-break, truncated to topK. If scoring fails, the full candidate
// list passes through in retrieval order, untruncated.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []core.RetrievalCandidate, topK int) []core.RankedChunk {
	if len(candidates) == 0 {
		return nil
	}

	scores, err := r.score(ctx, query, candidates)
	if err != nil {
		r.logger.Warn("cross-encoder scoring failed, keeping retrieval order", "error", err)
		return passthrough(candidates, 0)
	}

	ranked := make([]core.RankedChunk, len(candidates))
	for i, c := range candidates {
		ranked[i] = core.RankedChunk{
			RetrievalCandidate: c,
			RerankScore:        scores[i],
		}
	}
	sortRanked(ranked, func(rc core.RankedChunk) float64 { return rc.RerankScore })
	return truncate(ranked, topK)
}

// RerankHybrid scores all candidates, min-max normalizes the retrieval and
// cross-encoder signals independently, and orders by their weighted blend.
// Normalization always spans the full candidate list, before truncation. If
// scoring fails, the full candidate list passes through in retrieval order,
// untruncated.
func (r *Reranker) RerankHybrid(ctx context.Context, query string, candidates []core.RetrievalCandidate, topK int) []core.RankedChunk {
	if len(candidates) == 0 {
		return nil
	}

	scores, err := r.score(ctx, query, candidates)
	if err != nil {
		r.logger.Warn("cross-encoder scoring failed, keeping retrieval order", "error", err)
		return passthrough(candidates, 0)
	}

	retrievalScores := make([]float64, len(candidates))
	for i, c := range candidates {
		retrievalScores[i] = c.Score
	}
	normRetrieval := minMaxNormalize(retrievalScores, r.degenerateNorm)
	normRerank := minMaxNormalize(scores, r.degenerateNorm)

	ranked := make([]core.RankedChunk, len(candidates))
	for i, c := range candidates {
		ranked[i] = core.RankedChunk{
			RetrievalCandidate:       c,
			RerankScore:              scores[i],
			NormalizedRetrievalScore: normRetrieval[i],
			NormalizedRerankScore:    normRerank[i],
			HybridScore:              r.weights.Retrieval*normRetrieval[i] + r.weights.Rerank*normRerank[i],
		}
	}
	sortRanked(ranked, func(rc core.RankedChunk) float64 { return rc.HybridScore })
	return truncate(ranked, topK)
}

func (r *Reranker) score(ctx context.Context, query string, candidates []core.RetrievalCandidate) ([]float64, error) {
	pairs := make([]ai.ScorePair, len(candidates))
	for i, c := range candidates {
		pairs[i] = ai.ScorePair{Query: query, Document: c.Content}
	}
	return r.scorer.Predict(ctx, pairs)
}

func sortRanked(ranked []core.RankedChunk, key func(core.RankedChunk) float64) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if key(ranked[i]) != key(ranked[j]) {
			return key(ranked[i]) > key(ranked[j])
		}
		return ranked[i].ChunkID < ranked[j].ChunkID
	})
}

func truncate(ranked []core.RankedChunk, topK int) []core.RankedChunk {
	if topK > 0 && len(ranked) > topK {
		return ranked[:topK]
	}
	return ranked
}
