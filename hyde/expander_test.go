package hyde

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/resumerank/ai/mock"
	"github.com/poiesic/resumerank/core"
)

const jobDescription = "Senior Python engineer to lead a team building data pipelines on AWS"

func TestExpandBullets(t *testing.T) {
	ctx := context.Background()

	t.Run("parses JSON array responses", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.CompleteFunc = func(ctx context.Context, prompt string, temperature float64) (string, error) {
			return `["Built ETL pipelines processing 2TB daily", "Led migration to AWS", "Mentored 3 junior engineers"]`, nil
		}

		docs := New(gen).Expand(ctx, jobDescription, core.StrategyBullets, 5, 0.7)
		require.Len(t, docs, 3)
		assert.Equal(t, "Built ETL pipelines processing 2TB daily", docs[0].Text)
		for _, d := range docs {
			assert.Equal(t, core.StrategyBullets, d.Strategy)
		}
	})

	t.Run("tolerates prose around the array", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.CompleteFunc = func(ctx context.Context, prompt string, temperature float64) (string, error) {
			return "Here are the bullets:\n```json\n[\"Designed scalable microservices architecture\"]\n```\nHope this helps!", nil
		}

		docs := New(gen).Expand(ctx, jobDescription, core.StrategyBullets, 5, 0.7)
		require.Len(t, docs, 1)
		assert.Equal(t, "Designed scalable microservices architecture", docs[0].Text)
	})

	t.Run("falls back to line splitting on malformed JSON", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.CompleteFunc = func(ctx context.Context, prompt string, temperature float64) (string, error) {
			return "1. Developed production services handling millions of requests\n" +
				"2. Improved deployment pipeline reliability significantly\n" +
				"ok\n", nil
		}

		docs := New(gen).Expand(ctx, jobDescription, core.StrategyBullets, 5, 0.7)
		require.Len(t, docs, 2)
		assert.Equal(t, "Developed production services handling millions of requests", docs[0].Text)
		assert.Equal(t, "Improved deployment pipeline reliability significantly", docs[1].Text)
	})

	t.Run("truncates to requested count", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.CompleteFunc = func(ctx context.Context, prompt string, temperature float64) (string, error) {
			return `["one bullet about engineering", "two bullet about engineering", "three bullet about engineering"]`, nil
		}

		docs := New(gen).Expand(ctx, jobDescription, core.StrategyBullets, 2, 0.7)
		assert.Len(t, docs, 2)
	})

	t.Run("generator failure degrades to rule-based fragments", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.CompleteFunc = func(ctx context.Context, prompt string, temperature float64) (string, error) {
			return "", errors.New("connection refused")
		}

		docs := New(gen).Expand(ctx, jobDescription, core.StrategyBullets, 5, 0.7)
		require.NotEmpty(t, docs)
		// python, lead/team, data, aws families all trigger.
		assert.Len(t, docs, 4)
	})

	t.Run("nil generator runs offline", func(t *testing.T) {
		docs := New(nil).Expand(ctx, jobDescription, core.StrategyBullets, 5, 0.7)
		assert.NotEmpty(t, docs)
	})

	t.Run("offline expansion is deterministic", func(t *testing.T) {
		e := New(nil)
		a := e.Expand(ctx, jobDescription, core.StrategyBullets, 5, 0.7)
		b := e.Expand(ctx, jobDescription, core.StrategyBullets, 5, 0.7)
		assert.Equal(t, a, b)
	})

	t.Run("no keyword matches yields generic fragments", func(t *testing.T) {
		docs := New(nil).Expand(ctx, "head chef for a busy kitchen", core.StrategyBullets, 5, 0.7)
		assert.Len(t, docs, len(genericBullets))
	})
}

func TestExpandExperiences(t *testing.T) {
	ctx := context.Background()

	t.Run("flattens structured experiences", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.CompleteFunc = func(ctx context.Context, prompt string, temperature float64) (string, error) {
			return `[{"title": "Data Engineer", "company": "Tech Company", "bullets": ["Built pipelines", "Cut costs"]}]`, nil
		}

		docs := New(gen).Expand(ctx, jobDescription, core.StrategyExperiences, 3, 0.7)
		require.Len(t, docs, 1)
		assert.Equal(t, "Data Engineer at Tech Company\n• Built pipelines\n• Cut costs", docs[0].Text)
		assert.Equal(t, core.StrategyExperiences, docs[0].Strategy)
	})

	t.Run("unparseable response degrades to generic experience", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.CompleteFunc = func(ctx context.Context, prompt string, temperature float64) (string, error) {
			return "I cannot produce JSON today", nil
		}

		docs := New(gen).Expand(ctx, jobDescription, core.StrategyExperiences, 3, 0.7)
		require.Len(t, docs, 1)
		assert.Contains(t, docs[0].Text, "Software Engineer at Technology Company")
	})
}

func TestExpandDefaults(t *testing.T) {
	gen := mock.NewMockGenerator()
	var gotTemperature float64
	var gotPrompt string
	gen.CompleteFunc = func(ctx context.Context, prompt string, temperature float64) (string, error) {
		gotTemperature = temperature
		gotPrompt = prompt
		return `["Delivered a project with measurable results"]`, nil
	}

	New(gen).Expand(context.Background(), jobDescription, core.StrategyBullets, 0, 0)
	assert.Equal(t, DefaultTemperature, gotTemperature)
	assert.Contains(t, gotPrompt, jobDescription)

	t.Run("unknown strategy behaves as bullets", func(t *testing.T) {
		docs := New(gen).Expand(context.Background(), jobDescription, core.ExpansionStrategy("paragraphs"), 5, 0.7)
		require.Len(t, docs, 1)
		assert.Equal(t, core.StrategyBullets, docs[0].Strategy)
	})
}
