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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/resumerank"
	"github.com/poiesic/resumerank/ai"
	"github.com/poiesic/resumerank/batch"
	"github.com/poiesic/resumerank/core"
)

func main() {
	app := &cli.App{
		Name:  "resumerank",
		Usage: "Rank resume sections against job descriptions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Chunk and index resume text files",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Maximum parallel files",
						Value: batch.DefaultMaxWorkers,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-file processing timeout",
						Value: batch.DefaultItemTimeout,
					},
					&cli.BoolFlag{
						Name:  "adaptive",
						Usage: "Shrink the worker pool under memory or CPU pressure",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per file",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Rank indexed chunks against a job description",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Retrieval depth before reranking",
						Value: 30,
					},
					&cli.IntFlag{
						Name:  "results",
						Usage: "Number of final results",
						Value: resumerank.DefaultRerankTopK,
					},
					&cli.BoolFlag{
						Name:  "no-hyde",
						Usage: "Disable hypothetical-document query expansion",
					},
					&cli.BoolFlag{
						Name:  "no-rerank",
						Usage: "Disable cross-encoder reranking",
					},
					&cli.StringFlag{
						Name:  "strategy",
						Usage: "Expansion strategy (bullets, experiences)",
						Value: string(core.StrategyBullets),
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Restrict results to one source document",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Show the retrieval breakdown and rank movement",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Show index statistics",
				Action: statsCommand,
				Flags:  engineFlags(),
			},
			{
				Name:      "delete",
				Usage:     "Remove an ingested document from the index",
				ArgsUsage: "SOURCE_ID",
				Action:    deleteCommand,
				Flags:     engineFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to the vector index directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Model service host URL for embedding, scoring, and generation",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "generator-model",
			Usage: "Generation model name for query expansion and scoring",
			Value: "qwen2.5:3b",
		},
	}
}

func openEngine(c *cli.Context) (*resumerank.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return resumerank.Open(c.String("db"), resumerank.WithAIConfig(aiConfig))
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("at least one file is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := []batch.Option{
		batch.WithMaxWorkers(c.Int("workers")),
		batch.WithItemTimeout(c.Duration("timeout")),
	}
	if c.Bool("adaptive") {
		opts = append(opts, batch.WithResourceMonitor(batch.NewResourceMonitor()))
	}
	coordinator, err := batch.NewCoordinator(opts...)
	if err != nil {
		return err
	}
	defer coordinator.Release()

	items := make([]core.BatchItem, len(files))
	for i, path := range files {
		items[i] = core.BatchItem{Ref: path, Payload: path}
	}

	maxRetries := c.Int("max-retries")
	retryDelay := c.Duration("retry-delay")

	progress := batch.NewProgressTracker(os.Stderr, len(items), 1)
	progress.Start()

	summary, err := coordinator.ProcessBatch(ctx, items, func(ctx context.Context, item core.BatchItem) (any, error) {
		defer progress.Increment(1)

		path := item.Payload.(string)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		sourceID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		var chunks []core.Chunk
		err = batch.RetryWithBackoff(ctx, func() error {
			var ingestErr error
			chunks, ingestErr = engine.Ingest(ctx, string(data), sourceID, map[string]string{"file": path})
			return ingestErr
		}, maxRetries, retryDelay)
		if err != nil {
			return nil, err
		}
		return len(chunks), nil
	})
	if err != nil {
		return err
	}
	progress.Finish()

	fmt.Fprintf(os.Stderr, "Ingested %d/%d files in %s (status: %s)\n",
		summary.Successful, summary.Total, summary.TotalTime.Round(time.Millisecond), summary.Status)
	for _, r := range summary.Results {
		if r.Status != core.StatusSuccess {
			fmt.Fprintf(os.Stderr, "  %s: %s (%s)\n", r.Ref, r.Error, r.Status)
		}
	}
	if summary.Status == core.BatchFailed {
		return fmt.Errorf("all files failed")
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	strategy := core.ExpansionStrategy(c.String("strategy"))
	if err := core.ValidateStrategy(strategy); err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := resumerank.SearchOptions{
		TopK:        c.Int("top-k"),
		RerankTopK:  c.Int("results"),
		NoExpansion: c.Bool("no-hyde"),
		NoRerank:    c.Bool("no-rerank"),
		Strategy:    strategy,
	}
	if source := c.String("source"); source != "" {
		opts.Filter = map[string]string{"source_id": source}
	}

	var ranked []core.RankedChunk
	var explanation *resumerank.Explanation
	if c.Bool("explain") {
		explanation, err = engine.Explain(ctx, query, opts)
		if err != nil {
			return err
		}
		ranked = explanation.Ranked
	} else {
		ranked, err = engine.Search(ctx, query, opts)
		if err != nil {
			return err
		}
	}

	if len(ranked) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, rc := range ranked {
		fmt.Printf("%2d. [%s] hybrid=%.3f retrieval=%.3f rerank=%.3f method=%s\n",
			i+1, rc.ChunkID, rc.HybridScore, rc.Score, rc.RerankScore, rc.Method)
		for _, line := range strings.Split(rc.Content, "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
	if explanation != nil {
		fmt.Print(formatExplanation(explanation))
	}
	return nil
}

// formatExplanation renders the retrieval breakdown and rank movement that
// accompany --explain.
func formatExplanation(ex *resumerank.Explanation) string {
	var b strings.Builder
	r := ex.Retrieval
	fmt.Fprintf(&b, "\nRetrieval: %d candidates (%d direct, %d expansion-only, %d corroborated)\n",
		r.Candidates, r.DirectHits, r.ExpandedOnly, r.Corroborated)
	fmt.Fprintf(&b, "Scores: min=%.3f max=%.3f mean=%.3f\n", r.MinScore, r.MaxScore, r.MeanScore)
	m := ex.Reranking
	fmt.Fprintf(&b, "Reranking: %d moved, %d promoted, max displacement %d, %d new in final list\n",
		m.Moved, m.Promoted, m.MaxDisplacement, m.NewInTopK)
	return b.String()
}

func statsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats := engine.Stats()
	fmt.Printf("Indexed chunks: %d\n", stats.Chunks)
	return nil
}

func deleteCommand(c *cli.Context) error {
	sourceID := c.Args().First()
	if sourceID == "" {
		return fmt.Errorf("source ID is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Delete(context.Background(), sourceID); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Deleted %s\n", sourceID)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
