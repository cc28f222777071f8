package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/resumerank"
	"github.com/poiesic/resumerank/rerank"
	"github.com/poiesic/resumerank/retrieve"
)

func TestEngineFlags(t *testing.T) {
	flags := engineFlags()

	t.Run("db is required", func(t *testing.T) {
		var dbFlag *cli.StringFlag
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "db" {
				dbFlag = f
				break
			}
		}
		require.NotNil(t, dbFlag)
		assert.True(t, dbFlag.Required)
	})

	t.Run("host has a local default", func(t *testing.T) {
		var hostFlag *cli.StringFlag
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "host" {
				hostFlag = f
				break
			}
		}
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})
}

func TestFormatExplanation(t *testing.T) {
	out := formatExplanation(&resumerank.Explanation{
		Retrieval: retrieve.Stats{
			Candidates:   12,
			DirectHits:   7,
			ExpandedOnly: 5,
			Corroborated: 3,
			MinScore:     0.21,
			MaxScore:     0.95,
			MeanScore:    0.58,
		},
		Reranking: rerank.Comparison{
			Moved:           4,
			Promoted:        2,
			MaxDisplacement: 3,
			NewInTopK:       1,
		},
	})

	assert.Contains(t, out, "12 candidates (7 direct, 5 expansion-only, 3 corroborated)")
	assert.Contains(t, out, "min=0.210 max=0.950 mean=0.580")
	assert.Contains(t, out, "4 moved, 2 promoted, max displacement 3, 1 new in final list")
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	newApp := func(action cli.ActionFunc) *cli.App {
		return &cli.App{
			Name: "resumerank",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "info"},
			},
			Before: setupLogger,
			Action: action,
			Writer: os.Stderr,
		}
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
			app := newApp(func(c *cli.Context) error { return nil })
			err := app.Run([]string{"resumerank", "--log-level", level})
			assert.NoError(t, err, "level %q", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error { return nil })
		err := app.Run([]string{"resumerank", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("debug level is applied", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error {
			assert.True(t, slog.Default().Enabled(c.Context, slog.LevelDebug))
			return nil
		})
		err := app.Run([]string{"resumerank", "--log-level", "debug"})
		require.NoError(t, err)
	})
}

func TestSearchCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "resumerank",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags:  engineFlags(),
			},
		},
	}

	t.Run("query is required", func(t *testing.T) {
		err := app.Run([]string{"resumerank", "search", "--db", t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})

	t.Run("db is required", func(t *testing.T) {
		err := app.Run([]string{"resumerank", "search", "backend engineer"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})
}
