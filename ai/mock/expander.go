package mock

import "context"

// MockQueryExpander is a test double for ai.QueryExpander.
// It allows custom behavior injection via function fields.
type MockQueryExpander struct {
	// ExpandQueryFunc is called by ExpandQuery if set.
	// If nil, uses default deterministic behavior.
	ExpandQueryFunc func(ctx context.Context, query string) ([]string, error)

	callCount int
}

// NewMockQueryExpander creates a mock query expander with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExpander().
func NewMockQueryExpander() *MockQueryExpander {
	return &MockQueryExpander{}
}

// ExpandQuery returns the original query plus two fixed variations.
func (m *MockQueryExpander) ExpandQuery(ctx context.Context, query string) ([]string, error) {
	m.callCount++

	if m.ExpandQueryFunc != nil {
		return m.ExpandQueryFunc(ctx, query)
	}

	return []string{
		query,
		query + " overview",
		query + " examples",
	}, nil
}

// CallCount returns the number of times ExpandQuery was called.
func (m *MockQueryExpander) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockQueryExpander) Reset() {
	m.callCount = 0
	m.ExpandQueryFunc = nil
}
