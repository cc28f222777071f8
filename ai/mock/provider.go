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


package mock

import "github.com/poiesic/resumerank/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder, cross-encoder, and generator instances.
type MockProvider struct {
	embedder  *MockEmbedder
	scorer    *MockCrossEncoder
	generator *MockGenerator
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockEmbedder()/GetMockCrossEncoder()/GetMockGenerator() to access
// concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		scorer:    NewMockCrossEncoder(),
		generator: NewMockGenerator(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, scorer *MockCrossEncoder, generator *MockGenerator) ai.Provider {
	return &MockProvider{
		embedder:  embedder,
		scorer:    scorer,
		generator: generator,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// CrossEncoder returns the mock cross-encoder.
func (p *MockProvider) CrossEncoder() ai.CrossEncoder {
	return p.scorer
}

// Generator returns the mock generator.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Close is a no-op for the mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockCrossEncoder returns the concrete mock cross-encoder for test assertions.
func (p *MockProvider) GetMockCrossEncoder() *MockCrossEncoder {
	return p.scorer
}

// GetMockGenerator returns the concrete mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}
