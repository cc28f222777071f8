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

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptySourceID indicates the SourceID field is empty.
	ErrEmptySourceID = errors.New("source id cannot be empty")

	// ErrInvalidChunkType indicates an unrecognized ChunkType value.
	ErrInvalidChunkType = errors.New("invalid chunk type")

	// ErrEmptyText indicates a document contained no usable text.
	// This is fatal to the calling flow; there is no recovery here.
	ErrEmptyText = errors.New("document contains no usable text")

	// ErrInvalidStrategy indicates an unrecognized ExpansionStrategy value.
	ErrInvalidStrategy = errors.New("invalid expansion strategy")

	// ErrInvalidWeights indicates hybrid scoring weights outside [0,1].
	ErrInvalidWeights = errors.New("scoring weights must be in [0,1]")
)
