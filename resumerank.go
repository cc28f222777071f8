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

package resumerank

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/resumerank/ai"
	"github.com/poiesic/resumerank/ai/openai"
	"github.com/poiesic/resumerank/batch"
	"github.com/poiesic/resumerank/chunker"
	"github.com/poiesic/resumerank/core"
	"github.com/poiesic/resumerank/hyde"
	"github.com/poiesic/resumerank/index"
	"github.com/poiesic/resumerank/index/chromem"
	"github.com/poiesic/resumerank/rerank"
	"github.com/poiesic/resumerank/retrieve"
)

// DefaultRerankTopK is the final result count when the caller does not choose.
const DefaultRerankTopK = 10

// Engine ties the ranking pipeline together: chunking, ingestion into the
// vector index, query expansion, multi-pass retrieval, and reranking.
type Engine struct {
	index     index.Index
	provider  ai.Provider
	ownsIndex bool
	chunker   *chunker.Chunker
	expander  *hyde.Expander
	retriever *retrieve.Retriever
	reranker  *rerank.Reranker
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig       *ai.Config
	provider       ai.Provider
	retrieveConfig retrieve.Config
	weights        rerank.Weights
	logger         *slog.Logger
}

// WithAIConfig sets the model endpoints used to build the default provider.
// Ignored when WithProvider is given.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider supplies an existing AI provider instead of building one.
// The engine takes ownership and closes it.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithRetrieveConfig overrides the retrieval boost constants.
func WithRetrieveConfig(config retrieve.Config) EngineOption {
	return func(o *engineOptions) {
		o.retrieveConfig = config
	}
}

// WithWeights overrides the hybrid scoring weights.
func WithWeights(weights rerank.Weights) EngineOption {
	return func(o *engineOptions) {
		o.weights = weights
	}
}

// WithEngineLogger sets a custom logger.
// Default is slog.Default().
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open creates an engine over a persistent vector index at the given
// directory. The index is owned by the engine and closed with it.
func Open(path string, opts ...EngineOption) (*Engine, error) {
	idx, err := chromem.Open(path)
	if err != nil {
		return nil, err
	}
	engine, err := New(idx, opts...)
	if err != nil {
		idx.Close()
		return nil, err
	}
	engine.ownsIndex = true
	return engine, nil
}

// New creates an engine over an existing index.
func New(idx index.Index, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:       ai.DefaultConfig(),
		retrieveConfig: retrieve.DefaultConfig(),
		weights:        rerank.DefaultWeights(),
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	reranker, err := rerank.New(provider.CrossEncoder(),
		rerank.WithWeights(options.weights),
		rerank.WithLogger(options.logger))
	if err != nil {
		if options.provider == nil {
			provider.Close()
		}
		return nil, err
	}

	expander := hyde.New(provider.Generator(), hyde.WithLogger(options.logger))
	retriever := retrieve.New(idx, provider.Embedder(),
		retrieve.WithConfig(options.retrieveConfig),
		retrieve.WithExpander(expander),
		retrieve.WithLogger(options.logger))

	return &Engine{
		index:     idx,
		provider:  provider,
		chunker:   chunker.New(chunker.WithLogger(options.logger)),
		expander:  expander,
		retriever: retriever,
		reranker:  reranker,
		logger:    options.logger,
	}, nil
}

// Ingest chunks one source document, embeds the chunks, and upserts them into
// the index. Re-ingesting the same source overwrites its chunks in place.
// The produced chunks are returned for inspection.
func (e *Engine) Ingest(ctx context.Context, rawText, sourceID string, metadata map[string]string) ([]core.Chunk, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, core.ErrEmptyText
	}

	chunks := e.chunker.Chunk(rawText, sourceID)
	if len(chunks) == 0 {
		return nil, core.ErrEmptyText
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}
	embeddings, err := e.provider.Embedder().EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	docs := make([]index.Document, len(chunks))
	for i, ch := range chunks {
		docMeta := map[string]string{
			"source_id":   ch.SourceID,
			"chunk_type":  string(ch.Type),
			"chunk_index": strconv.Itoa(ch.ChunkIndex),
			"fingerprint": core.Fingerprint(ch.Content),
		}
		for k, v := range ch.Metadata {
			docMeta[k] = v
		}
		for k, v := range metadata {
			docMeta[k] = v
		}
		docs[i] = index.Document{
			ID:        ch.ChunkID,
			Content:   ch.Content,
			Metadata:  docMeta,
			Embedding: embeddings[i],
		}
	}

	if err := e.index.Upsert(ctx, docs...); err != nil {
		return nil, fmt.Errorf("indexing chunks: %w", err)
	}

	e.logger.Info("ingested document", "sourceID", chunks[0].SourceID, "chunks", len(chunks))
	return chunks, nil
}

// SearchOptions shapes one Search call. The zero value runs the full
// pipeline: expansion on, reranking on, default depths.
type SearchOptions struct {
	// TopK is the retrieval depth. Zero means retrieve.DefaultTopK.
	TopK int
	// RerankTopK caps the final result list. Zero means DefaultRerankTopK.
	RerankTopK int
	// NoExpansion disables hypothetical-document passes.
	NoExpansion bool
	// NoRerank skips cross-encoder scoring and keeps retrieval order.
	NoRerank bool
	// Strategy selects the expansion shape. Zero value means bullets.
	Strategy core.ExpansionStrategy
	// ExpansionCount is how many hypothetical documents to generate.
	ExpansionCount int
	// Temperature is passed through to expansion.
	Temperature float64
	// Filter restricts retrieval to chunks whose metadata matches.
	Filter map[string]string
}

// Search ranks indexed chunks against a job description.
func (e *Engine) Search(ctx context.Context, query string, opts SearchOptions) ([]core.RankedChunk, error) {
	ranked, _, err := e.search(ctx, query, opts)
	return ranked, err
}

// Explanation carries a ranking together with the retrieval breakdown and
// rank movement that produced it.
type Explanation struct {
	// Ranked is what Search would have returned for the same call.
	Ranked []core.RankedChunk
	// Retrieval summarizes the merged candidate list before reranking.
	Retrieval retrieve.Stats
	// Reranking diffs the final order against the retrieval order.
	Reranking rerank.Comparison
}

// Explain runs the same pipeline as Search and reports how the ranking came
// about: the retrieval pass breakdown and how much reranking moved things.
func (e *Engine) Explain(ctx context.Context, query string, opts SearchOptions) (*Explanation, error) {
	ranked, candidates, err := e.search(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return &Explanation{
		Ranked:    ranked,
		Retrieval: retrieve.Summarize(candidates),
		Reranking: rerank.CompareWithBaseline(candidates, ranked),
	}, nil
}

func (e *Engine) search(ctx context.Context, query string, opts SearchOptions) ([]core.RankedChunk, []core.RetrievalCandidate, error) {
	rerankTopK := opts.RerankTopK
	if rerankTopK <= 0 {
		rerankTopK = DefaultRerankTopK
	}

	candidates, err := e.retriever.Retrieve(ctx, query, retrieve.Options{
		TopK:           opts.TopK,
		UseExpansion:   !opts.NoExpansion,
		Strategy:       opts.Strategy,
		ExpansionCount: opts.ExpansionCount,
		Temperature:    opts.Temperature,
		Filter:         opts.Filter,
	})
	if err != nil {
		return nil, nil, err
	}

	var ranker rerank.Ranker = e.reranker
	if opts.NoRerank {
		ranker = rerank.Passthrough{}
	}
	return ranker.Rank(ctx, query, candidates, rerankTopK), candidates, nil
}

// Delete removes every chunk of one source document from the index.
func (e *Engine) Delete(ctx context.Context, sourceID string) error {
	if sourceID == "" {
		return core.ErrEmptySourceID
	}
	return e.index.DeleteWhere(ctx, map[string]string{"source_id": sourceID})
}

// Stats reports index-level counters.
type Stats struct {
	// Chunks is the number of indexed chunks across all sources.
	Chunks int
}

// Stats returns current engine statistics.
func (e *Engine) Stats() Stats {
	return Stats{Chunks: e.index.Count()}
}

// NewCoordinator creates a batch coordinator for running engine operations
// over many independent items.
func (e *Engine) NewCoordinator(opts ...batch.Option) (*batch.Coordinator, error) {
	return batch.NewCoordinator(opts...)
}

// Close releases the provider and, when the engine opened it, the index.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if e.ownsIndex {
		return e.index.Close()
	}
	return nil
}
