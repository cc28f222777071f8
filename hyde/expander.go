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

package hyde

import (
	"context"
	"log/slog"

	"github.com/poiesic/resumerank/ai"
	"github.com/poiesic/resumerank/core"
)

// DefaultCount is how many hypothetical documents an expansion targets when
// the caller does not say.
const DefaultCount = 5

// DefaultTemperature balances diversity of generated fragments against
// drifting off the job description.
const DefaultTemperature = 0.7

// Expander turns a job description into hypothetical resume fragments. A nil
// generator is allowed and puts the expander in offline mode, where every
// expansion uses the deterministic fallback rules.
type Expander struct {
	generator ai.Generator
	logger    *slog.Logger
}

// Option configures an Expander.
type Option func(*Expander)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// New creates an expander backed by the given generator, which may be nil.
func New(generator ai.Generator, opts ...Option) *Expander {
	e := &Expander{
		generator: generator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand generates up to count hypothetical documents for the job
// description. Expansion never returns an error: generation or parse failures
// degrade to rule-based fragments, so the result is always non-empty for
// non-empty input. An unrecognized strategy is treated as StrategyBullets.
func (e *Expander) Expand(ctx context.Context, jobDescription string, strategy core.ExpansionStrategy, count int, temperature float64) []core.HypotheticalDocument {
	if count <= 0 {
		count = DefaultCount
	}
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	if strategy == core.StrategyExperiences {
		return e.expandExperiences(ctx, jobDescription, count)
	}
	if strategy != core.StrategyBullets {
		e.logger.Warn("unknown expansion strategy, using bullets", "strategy", strategy)
	}
	return e.expandBullets(ctx, jobDescription, count, temperature)
}

func (e *Expander) expandBullets(ctx context.Context, jobDescription string, count int, temperature float64) []core.HypotheticalDocument {
	bullets := e.generateBullets(ctx, jobDescription, count, temperature)
	if len(bullets) == 0 {
		bullets = fallbackBullets(jobDescription, count)
	}
	if len(bullets) > count {
		bullets = bullets[:count]
	}

	docs := make([]core.HypotheticalDocument, 0, len(bullets))
	for _, b := range bullets {
		docs = append(docs, core.HypotheticalDocument{Text: b, Strategy: core.StrategyBullets})
	}
	e.logger.Debug("expanded query", "strategy", core.StrategyBullets, "documents", len(docs))
	return docs
}

func (e *Expander) generateBullets(ctx context.Context, jobDescription string, count int, temperature float64) []string {
	if e.generator == nil {
		return nil
	}

	response, err := e.generator.Complete(ctx, buildBulletsPrompt(jobDescription, count), temperature)
	if err != nil {
		e.logger.Warn("hypothetical document generation failed, falling back", "error", err)
		return nil
	}

	bullets := parseBullets(response)
	if len(bullets) == 0 {
		e.logger.Warn("could not parse generated bullets, falling back")
	}
	return bullets
}

func (e *Expander) expandExperiences(ctx context.Context, jobDescription string, count int) []core.HypotheticalDocument {
	experiences := e.generateExperiences(ctx, jobDescription, count)
	if len(experiences) == 0 {
		experiences = fallbackExperiences()
	}
	if len(experiences) > count {
		experiences = experiences[:count]
	}

	docs := make([]core.HypotheticalDocument, 0, len(experiences))
	for _, exp := range experiences {
		docs = append(docs, core.HypotheticalDocument{
			Text:     flattenExperience(exp),
			Strategy: core.StrategyExperiences,
		})
	}
	e.logger.Debug("expanded query", "strategy", core.StrategyExperiences, "documents", len(docs))
	return docs
}

func (e *Expander) generateExperiences(ctx context.Context, jobDescription string, count int) []experience {
	if e.generator == nil {
		return nil
	}

	// Structured output needs a low temperature regardless of the bullet
	// diversity setting.
	response, err := e.generator.Complete(ctx, buildExperiencesPrompt(jobDescription, count), 0.3)
	if err != nil {
		e.logger.Warn("hypothetical experience generation failed, falling back", "error", err)
		return nil
	}

	experiences := parseExperiences(response)
	if len(experiences) == 0 {
		e.logger.Warn("could not parse generated experiences, falling back")
	}
	return experiences
}
