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


// Package ai provides abstractions for the AI collaborators used in Resumerank.
//
// This package defines interfaces for the model calls the ranking core makes:
// text embedding, joint (query, document) relevance scoring, and free-text
// generation for query expansion. It follows the dependency inversion
// principle, allowing the core domain and ranking logic to depend on
// abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - CrossEncoder: Jointly scores (query, document) pairs in batch
//   - Generator: Produces free text from a prompt
//
// plus Provider, which aggregates the three for convenient initialization.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return INTERFACE types to enforce
// abstraction; mock constructors return CONCRETE types to enable behavior
// injection and call-count assertions in tests.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "Senior Go engineer")
//	scores, err := provider.CrossEncoder().Predict(ctx, pairs)
package ai
