package resumerank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/resumerank/ai/mock"
	"github.com/poiesic/resumerank/core"
	"github.com/poiesic/resumerank/index/chromem"
)

const resumeFixture = `SUMMARY
Backend engineer focused on distributed data systems.

EXPERIENCE
Senior Engineer at Acme Corp
Jan 2020 - Present
- Built Python data pipelines on AWS
- Led a team of 4 engineers


Backend Developer at Widgets Inc
2016 - 2019
- Developed REST API services in Django

SKILLS
Python, AWS, PostgreSQL, Docker`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	idx, err := chromem.NewMemory()
	require.NoError(t, err)

	engine, err := New(idx, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestEngineIngest(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	chunks, err := engine.Ingest(ctx, resumeFixture, "resume-1", map[string]string{"candidate": "jdoe"})
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	assert.Equal(t, 4, engine.Stats().Chunks)

	t.Run("reingest overwrites in place", func(t *testing.T) {
		again, err := engine.Ingest(ctx, resumeFixture, "resume-1", nil)
		require.NoError(t, err)
		assert.Len(t, again, 4)
		assert.Equal(t, 4, engine.Stats().Chunks)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := engine.Ingest(ctx, "   ", "resume-2", nil)
		assert.ErrorIs(t, err, core.ErrEmptyText)
	})
}

func TestEngineSearch(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	_, err := engine.Ingest(ctx, resumeFixture, "resume-1", nil)
	require.NoError(t, err)

	t.Run("full pipeline", func(t *testing.T) {
		ranked, err := engine.Search(ctx, "Senior Python engineer with AWS experience", SearchOptions{})
		require.NoError(t, err)
		require.NotEmpty(t, ranked)
		assert.LessOrEqual(t, len(ranked), DefaultRerankTopK)

		// Hybrid scores are sorted descending.
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].HybridScore, ranked[i].HybridScore)
		}
		// Every result maps back to an ingested chunk.
		for _, rc := range ranked {
			assert.Contains(t, rc.ChunkID, "resume-1_")
			assert.NotEmpty(t, rc.Content)
		}
	})

	t.Run("expansion and rerank disabled", func(t *testing.T) {
		ranked, err := engine.Search(ctx, "Python engineer", SearchOptions{
			NoExpansion: true,
			NoRerank:    true,
			RerankTopK:  2,
		})
		require.NoError(t, err)
		require.NotEmpty(t, ranked)
		assert.LessOrEqual(t, len(ranked), 2)
		for _, rc := range ranked {
			assert.Equal(t, core.MethodDirect, rc.Method)
			assert.Zero(t, rc.RerankScore)
		}
	})

	t.Run("metadata filter restricts results", func(t *testing.T) {
		ranked, err := engine.Search(ctx, "engineer", SearchOptions{
			Filter: map[string]string{"chunk_type": "skills"},
		})
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Contains(t, ranked[0].Content, "Python, AWS")
	})

	t.Run("empty query rejected", func(t *testing.T) {
		_, err := engine.Search(ctx, "", SearchOptions{})
		assert.Error(t, err)
	})
}

func TestEngineExplain(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	_, err := engine.Ingest(ctx, resumeFixture, "resume-1", nil)
	require.NoError(t, err)

	t.Run("reports retrieval breakdown and rank movement", func(t *testing.T) {
		ex, err := engine.Explain(ctx, "Senior Python engineer with AWS experience", SearchOptions{})
		require.NoError(t, err)
		require.NotEmpty(t, ex.Ranked)

		// The candidate breakdown accounts for every candidate.
		assert.Positive(t, ex.Retrieval.Candidates)
		assert.Equal(t, ex.Retrieval.Candidates,
			ex.Retrieval.DirectHits+ex.Retrieval.ExpandedOnly)
		assert.GreaterOrEqual(t, ex.Retrieval.MaxScore, ex.Retrieval.MinScore)

		// Every ranked chunk came from the candidate list.
		assert.Zero(t, ex.Reranking.NewInTopK)
		assert.GreaterOrEqual(t, ex.Reranking.Moved, ex.Reranking.Promoted)
	})

	t.Run("matches what Search returns", func(t *testing.T) {
		query := "Python engineer"
		opts := SearchOptions{NoExpansion: true, NoRerank: true}

		ranked, err := engine.Search(ctx, query, opts)
		require.NoError(t, err)
		ex, err := engine.Explain(ctx, query, opts)
		require.NoError(t, err)
		assert.Equal(t, ranked, ex.Ranked)

		// Reranking disabled keeps retrieval order.
		assert.Zero(t, ex.Reranking.Moved)
	})

	t.Run("empty query rejected", func(t *testing.T) {
		_, err := engine.Explain(ctx, "", SearchOptions{})
		assert.Error(t, err)
	})
}

func TestEngineDelete(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	_, err := engine.Ingest(ctx, resumeFixture, "resume-1", nil)
	require.NoError(t, err)
	_, err = engine.Ingest(ctx, "SUMMARY\nFrontend developer with React experience", "resume-2", nil)
	require.NoError(t, err)

	require.NoError(t, engine.Delete(ctx, "resume-1"))
	assert.Equal(t, 1, engine.Stats().Chunks)

	assert.ErrorIs(t, engine.Delete(ctx, ""), core.ErrEmptySourceID)
}

func TestEngineBatchIngest(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	coordinator, err := engine.NewCoordinator()
	require.NoError(t, err)
	defer coordinator.Release()

	items := []core.BatchItem{
		{Ref: "resume-1", Payload: resumeFixture},
		{Ref: "resume-2", Payload: "SUMMARY\nData scientist with PyTorch experience"},
		{Ref: "resume-3", Payload: "   "}, // blank document fails in isolation
	}

	summary, err := coordinator.ProcessBatch(ctx, items, func(ctx context.Context, item core.BatchItem) (any, error) {
		chunks, err := engine.Ingest(ctx, item.Payload.(string), item.Ref, nil)
		if err != nil {
			return nil, err
		}
		return len(chunks), nil
	})
	require.NoError(t, err)

	assert.Equal(t, core.BatchPartial, summary.Status)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 5, engine.Stats().Chunks)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	engine, err := Open(dir, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	_, err = engine.Ingest(context.Background(), resumeFixture, "resume-1", nil)
	require.NoError(t, err)
	require.NoError(t, engine.Close())

	reopened, err := Open(dir, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, 4, reopened.Stats().Chunks)
}
