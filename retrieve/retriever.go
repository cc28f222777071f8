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

package retrieve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/resumerank/ai"
	"github.com/poiesic/resumerank/core"
	"github.com/poiesic/resumerank/index"
)

// DefaultTopK is the candidate list size when the caller does not choose one.
const DefaultTopK = 30

// Expander generates hypothetical documents for a query. *hyde.Expander
// satisfies this.
type Expander interface {
	Expand(ctx context.Context, jobDescription string, strategy core.ExpansionStrategy, count int, temperature float64) []core.HypotheticalDocument
}

// Config holds the score adjustment constants applied during merging.
type Config struct {
	// FrequencyBoost is added once per corroborating pass beyond the first.
	FrequencyBoost float64
	// FrequencyBoostCap bounds the total frequency boost.
	FrequencyBoostCap float64
	// DirectBoost is added when the direct pass surfaced the chunk.
	DirectBoost float64
}

// DefaultConfig returns the standard boost constants.
func DefaultConfig() Config {
	return Config{
		FrequencyBoost:    0.05,
		FrequencyBoostCap: 0.20,
		DirectBoost:       0.05,
	}
}

// Retriever executes multi-pass retrievals against one index.
type Retriever struct {
	index    index.Index
	embedder ai.Embedder
	expander Expander
	config   Config
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithConfig overrides the boost constants.
func WithConfig(config Config) Option {
	return func(r *Retriever) {
		r.config = config
	}
}

// WithExpander sets the query expander. Without one, retrievals are always
// direct-only.
func WithExpander(expander Expander) Option {
	return func(r *Retriever) {
		r.expander = expander
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// New creates a retriever over the given index and embedder.
func New(idx index.Index, embedder ai.Embedder, opts ...Option) *Retriever {
	r := &Retriever{
		index:    idx,
		embedder: embedder,
		config:   DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Options shapes a single Retrieve call.
type Options struct {
	// TopK caps the merged candidate list. Zero means DefaultTopK.
	TopK int
	// UseExpansion enables hypothetical-document passes.
	UseExpansion bool
	// Strategy selects the expansion shape. Zero value means bullets.
	Strategy core.ExpansionStrategy
	// ExpansionCount is how many hypothetical documents to generate.
	ExpansionCount int
	// Temperature is passed through to generation.
	Temperature float64
	// Filter restricts every pass to chunks whose metadata matches.
	Filter map[string]string
}

// pass is one executed similarity search.
type pass struct {
	method  core.RetrievalMethod
	results []index.Result
}

// Retrieve runs the configured passes for the query and merges them into a
// deduplicated, score-ordered candidate list. When any pass fails, it retries
// once with a direct-only search before giving up.
func (r *Retriever) Retrieve(ctx context.Context, query string, opts Options) ([]core.RetrievalCandidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	passes, err := r.runPasses(ctx, query, topK, opts)
	if err != nil {
		r.logger.Warn("multi-pass retrieval failed, retrying direct-only", "error", err)
		passes, err = r.directOnly(ctx, query, topK, opts.Filter)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
		}
	}

	candidates := mergePasses(passes, r.config, topK)
	r.logger.Debug("retrieval complete",
		"passes", len(passes),
		"candidates", len(candidates),
		"expanded", opts.UseExpansion)
	return candidates, nil
}

func (r *Retriever) runPasses(ctx context.Context, query string, topK int, opts Options) ([]pass, error) {
	if !opts.UseExpansion || r.expander == nil {
		return r.directOnly(ctx, query, topK, opts.Filter)
	}

	docs := r.expander.Expand(ctx, query, opts.Strategy, opts.ExpansionCount, opts.Temperature)

	// The direct pass gets half the budget; each hypothetical pass gets an
	// even share of the whole, rounded up. Merging re-trims to topK.
	directK := max(topK/2, 1)
	perPassK := 1
	if len(docs) > 0 {
		perPassK = topK/len(docs) + 1
	}

	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	results, err := r.index.Query(ctx, embedding, directK, opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("direct search: %w", err)
	}
	passes := []pass{{method: core.MethodDirect, results: results}}

	for i, doc := range docs {
		embedding, err := r.embedder.EmbedText(ctx, doc.Text)
		if err != nil {
			return nil, fmt.Errorf("embedding hypothetical document %d: %w", i, err)
		}
		results, err := r.index.Query(ctx, embedding, perPassK, opts.Filter)
		if err != nil {
			return nil, fmt.Errorf("hypothetical search %d: %w", i, err)
		}
		passes = append(passes, pass{method: core.MethodHyde(i), results: results})
	}

	return passes, nil
}

func (r *Retriever) directOnly(ctx context.Context, query string, topK int, filter map[string]string) ([]pass, error) {
	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	results, err := r.index.Query(ctx, embedding, topK, filter)
	if err != nil {
		return nil, fmt.Errorf("direct search: %w", err)
	}
	return []pass{{method: core.MethodDirect, results: results}}, nil
}
