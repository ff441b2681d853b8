package mock

import (
	"context"
	"strings"

	"github.com/poiesic/didact/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFunc is called by Generate and GenerateStream if set.
	// If nil, uses default deterministic behavior.
	GenerateFunc func(ctx context.Context, req ai.GenerateRequest) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate produces a deterministic canned lesson.
func (m *MockGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}

	return cannedLesson(), nil
}

// GenerateStream produces the same text as Generate, delivered in one chunk.
func (m *MockGenerator) GenerateStream(ctx context.Context, req ai.GenerateRequest, fn ai.StreamFunc) (string, error) {
	text, err := m.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if fn != nil {
		if err := fn(ctx, []byte(text)); err != nil {
			return "", err
		}
	}
	return text, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}

// cannedLesson builds a deterministic markdown lesson long enough to pass
// the default quality gates: headings, a worked example, and a body of
// short plain sentences.
func cannedLesson() string {
	para := "This part of the lesson explains one idea at a time. " +
		"Each short step builds on the one before it. " +
		"You read a small piece of code and then you run it. " +
		"The result on your screen should match the result shown here. " +
		"If it does not match, go back one step and try it again. " +
		"Small steps keep the work easy to check and easy to fix.\n\n"

	var b strings.Builder
	b.WriteString("# A Practical Lesson\n\n")
	for _, section := range []string{
		"## Introduction",
		"## Core Ideas",
		"## A Worked Example",
		"## Common Mistakes",
		"## Summary",
	} {
		b.WriteString(section + "\n\n")
		b.WriteString(para)
		if section == "## A Worked Example" {
			b.WriteString("Here is a worked example you can type in and run yourself. " +
				"It is short on purpose. " +
				"Change one line, run it again, and watch what happens.\n\n")
		}
		b.WriteString(para)
	}
	return b.String()
}
