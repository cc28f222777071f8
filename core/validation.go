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


package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - SourceID must not be empty
//   - Type must be a recognized ChunkType
//   - ChunkIndex must not be negative
//
// NOT validated:
//   - Metadata (optional, extractor-populated)
//   - ChunkID (derived from SourceID and ChunkIndex at emission)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if chunk.SourceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptySourceID)
	}

	if err := ValidateChunkType(chunk.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	if chunk.ChunkIndex < 0 {
		return fmt.Errorf("%w: negative chunk index %d", ErrInvalidChunk, chunk.ChunkIndex)
	}

	return nil
}

// ValidateChunkType validates that a ChunkType has a recognized value.
func ValidateChunkType(t ChunkType) error {
	switch t {
	case ChunkTypeSummary, ChunkTypeExperience, ChunkTypeProject,
		ChunkTypeSkills, ChunkTypeEducation, ChunkTypeCertifications,
		ChunkTypeAwards, ChunkTypeUnknown:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidChunkType, t)
}

// ValidateStrategy validates that an ExpansionStrategy has a recognized value.
func ValidateStrategy(s ExpansionStrategy) error {
	switch s {
	case StrategyBullets, StrategyExperiences:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}
