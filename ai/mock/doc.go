// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Generator,
// ai.ConceptExtractor, ai.QueryExpander, and ai.AIProvider for use in unit
// tests. The mocks allow tests to run without external AI service
// dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vec, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockGen := mock.NewMockGenerator()
//	mockGen.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
//	    return "short draft", nil
//	}
//
//	// Check call counts
//	count := mockGen.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockGenerator: Returns a fixed multi-section markdown lesson
//   - MockConceptExtractor: Extracts the first distinct longer words
//   - MockQueryExpander: Returns the query plus two fixed variations
//   - MockProvider: Aggregates the four mock services
package mock
