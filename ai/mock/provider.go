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

import "github.com/poiesic/didact/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock embedder, generator, extractor, and expander instances.
type MockProvider struct {
	embedder  *MockEmbedder
	generator *MockGenerator
	extractor *MockConceptExtractor
	expander  *MockQueryExpander
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use the GetMock* accessors for concrete types in test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		generator: NewMockGenerator(),
		extractor: NewMockConceptExtractor(),
		expander:  NewMockQueryExpander(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, generator *MockGenerator, extractor *MockConceptExtractor, expander *MockQueryExpander) ai.AIProvider {
	return &MockProvider{
		embedder:  embedder,
		generator: generator,
		extractor: extractor,
		expander:  expander,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the mock generator.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// ConceptExtractor returns the mock concept extractor.
func (p *MockProvider) ConceptExtractor() ai.ConceptExtractor {
	return p.extractor
}

// QueryExpander returns the mock query expander.
func (p *MockProvider) QueryExpander() ai.QueryExpander {
	return p.expander
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockGenerator returns the underlying mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockConceptExtractor {
	return p.extractor
}

// GetMockExpander returns the underlying mock expander for test assertions.
func (p *MockProvider) GetMockExpander() *MockQueryExpander {
	return p.expander
}
