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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/resumerank/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const scoringPromptTemplate = `You are a relevance judge. For each numbered pair below, rate how well the
document answers the query on a continuous scale from 0.0 (irrelevant) to
10.0 (perfect match).

%s

Output ONLY a valid JSON array of numbers, one score per pair, in order.
Do not include any preamble, explanation, or text outside the array.
Example: [7.5, 1.0, 4.2]`

// CrossEncoder implements ai.CrossEncoder by asking a chat model to score
// (query, document) pairs jointly in one batched call.
type CrossEncoder struct {
	client llms.Model
	logger *slog.Logger
}

// newCrossEncoder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCrossEncoder(config *ai.Config) (*CrossEncoder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ScorerModel),
	)
	if err != nil {
		return nil, err
	}

	return &CrossEncoder{
		client: client,
		logger: slog.Default().With("component", "openai-crossencoder"),
	}, nil
}

// NewCrossEncoder creates a new cross-encoder using the provided configuration.
//
// Returns ai.CrossEncoder interface to enforce abstraction.
func NewCrossEncoder(config *ai.Config) (ai.CrossEncoder, error) {
	return newCrossEncoder(config)
}

// Predict scores every pair in one batched call.
// Retries up to 3 times on malformed JSON before giving up.
func (c *CrossEncoder) Predict(ctx context.Context, pairs []ai.ScorePair) ([]float64, error) {
	if len(pairs) == 0 {
		return []float64{}, nil
	}

	prompt := buildScoringPrompt(pairs)
	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	var scores []float64
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate scores", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			return nil, fmt.Errorf("scorer returned no choices")
		}

		scores, lastErr = parseScores(response.Choices[0].Content, len(pairs))
		if lastErr == nil {
			break
		}
		c.logger.Warn("error parsing scorer response",
			"attempt", attempt+1,
			"response", response.Choices[0].Content,
			"err", lastErr)
	}

	if lastErr != nil {
		c.logger.Error("failed to parse scorer response after retries", "err", lastErr)
		return nil, lastErr
	}

	return scores, nil
}

// buildScoringPrompt renders the numbered pair list into the scoring prompt.
func buildScoringPrompt(pairs []ai.ScorePair) string {
	var b strings.Builder
	for i, pair := range pairs {
		fmt.Fprintf(&b, "Pair %d:\nQuery: %s\nDocument: %s\n\n", i+1, pair.Query, pair.Document)
	}
	return fmt.Sprintf(scoringPromptTemplate, strings.TrimSpace(b.String()))
}

// parseScores extracts the JSON score array from a model response.
// Strips markdown code fences before parsing.
func parseScores(text string, want int) ([]float64, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Tolerate preamble despite instructions: parse the bracketed region only.
	if start := strings.Index(text, "["); start >= 0 {
		if end := strings.LastIndex(text, "]"); end > start {
			text = text[start : end+1]
		}
	}

	var scores []float64
	if err := json.Unmarshal([]byte(text), &scores); err != nil {
		return nil, err
	}
	if len(scores) != want {
		return nil, fmt.Errorf("score count mismatch: expected %d, got %d", want, len(scores))
	}
	return scores, nil
}
