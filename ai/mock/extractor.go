package mock

import (
	"context"
	"strings"
)

// MockConceptExtractor is a test double for ai.ConceptExtractor.
// It allows custom behavior injection via function fields.
type MockConceptExtractor struct {
	// ExtractConceptsFunc is called by ExtractConcepts if set.
	// If nil, uses default simple word extraction.
	ExtractConceptsFunc func(ctx context.Context, text string) ([]string, error)

	callCount int
}

// NewMockConceptExtractor creates a mock concept extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockConceptExtractor() *MockConceptExtractor {
	return &MockConceptExtractor{}
}

// ExtractConcepts extracts simple mock concepts from text.
// Default behavior: takes the first distinct longer words of the text.
func (m *MockConceptExtractor) ExtractConcepts(ctx context.Context, text string) ([]string, error) {
	m.callCount++

	if m.ExtractConceptsFunc != nil {
		return m.ExtractConceptsFunc(ctx, text)
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return []string{}, nil
	}

	seen := make(map[string]struct{})
	concepts := make([]string, 0, 5)
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()[]{}—–-#*`")
		// Short words are mostly stopwords; skip them.
		if len(word) < 5 {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		concepts = append(concepts, word)
		if len(concepts) >= 5 {
			break
		}
	}

	return concepts, nil
}

// CallCount returns the number of times ExtractConcepts was called.
func (m *MockConceptExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockConceptExtractor) Reset() {
	m.callCount = 0
	m.ExtractConceptsFunc = nil
}
