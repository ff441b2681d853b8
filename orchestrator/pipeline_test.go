package orchestrator

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/ai/mock"
)

// generationRequest distinguishes content-generation calls from the
// quality agent's accuracy-judge calls, which use a small token budget.
func generationRequest(req ai.GenerateRequest) bool {
	return req.MaxTokens > 1000
}

func TestLoopStopsAtIterationCap(t *testing.T) {
	// An unreachable threshold forces the loop to its cap; the last
	// candidate is kept and persisted anyway.
	f := newFixture(t, nil, WithMaxIterations(3), WithMinQualityScore(101))

	generations := 0
	f.generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
		if generationRequest(req) {
			generations++
		}
		return mock.NewMockGenerator().Generate(ctx, req)
	}

	status := f.run(t, rawTextTask("Graphs"))

	assert.Equal(t, PhaseCompleted, status.Phase)
	assert.False(t, status.MeetsStandards)
	assert.Equal(t, 3, status.Iterations)
	assert.Equal(t, 3, generations)
	assert.NotEmpty(t, status.ArtifactPath)
}

func TestLoopStopsAtFirstPassingIteration(t *testing.T) {
	f := newFixture(t, nil, WithMaxIterations(3), WithMinQualityScore(70))

	// The first candidate is deliberately thin and scores low; the
	// second is the full canned lesson and passes.
	generations := 0
	f.generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
		if !generationRequest(req) {
			return "not json", nil
		}
		generations++
		if generations == 1 {
			return "Graphs model networks. They matter.", nil
		}
		return mock.NewMockGenerator().Generate(ctx, req)
	}

	status := f.run(t, rawTextTask("Graphs"))

	assert.Equal(t, PhaseCompleted, status.Phase)
	assert.True(t, status.MeetsStandards)
	assert.Equal(t, 2, status.Iterations)
	assert.Equal(t, 2, generations)
	assert.GreaterOrEqual(t, status.OverallScore, 70.0)
}

func TestRecommendationsCarryBetweenIterations(t *testing.T) {
	f := newFixture(t, nil, WithMaxIterations(2), WithMinQualityScore(101))

	var secondPrompt string
	generations := 0
	f.generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
		if !generationRequest(req) {
			return "not json", nil
		}
		generations++
		if generations == 2 {
			secondPrompt = req.Prompt
		}
		return "Graphs model networks. They matter.", nil
	}

	status := f.run(t, rawTextTask("Graphs"))

	require.Equal(t, PhaseCompleted, status.Phase)
	require.Equal(t, 2, status.Iterations)
	assert.Contains(t, secondPrompt, "Apply these improvements from the previous review:")
}

func TestGenerationFailureMidLoopKeepsLastCandidate(t *testing.T) {
	f := newFixture(t, nil, WithMaxIterations(3), WithMinQualityScore(101))

	generations := 0
	f.generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
		if !generationRequest(req) {
			return "not json", nil
		}
		generations++
		if generations >= 2 {
			return "", errors.New("model offline")
		}
		return mock.NewMockGenerator().Generate(ctx, req)
	}

	status := f.run(t, rawTextTask("Graphs"))

	// Iteration 1 produced a candidate; iteration 2's failure aborts the
	// loop but the task still completes with that candidate.
	assert.Equal(t, PhaseCompleted, status.Phase)
	assert.False(t, status.MeetsStandards)
	assert.Equal(t, 1, status.Iterations)
	assert.NotEmpty(t, status.ArtifactPath)
}

func TestPartialSourceFailureContinues(t *testing.T) {
	f := newFixture(t, nil, WithMinQualityScore(70))

	task := rawTextTask("Graphs")
	// A second source that is far too short to ingest; the first source
	// carries the task.
	task.Sources = append(task.Sources, task.Sources[0])
	task.Sources[1].Locator = "too short"

	status := f.run(t, task)
	assert.Equal(t, PhaseCompleted, status.Phase)

	stats := f.orch.Stats()
	assert.Equal(t, 1, stats.Memory.Documents)
}

func TestRecommendationHistoryPersisted(t *testing.T) {
	f := newFixture(t, nil, WithMaxIterations(2), WithMinQualityScore(101))

	// Thin candidates guarantee recommendations on every iteration.
	f.generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
		if !generationRequest(req) {
			return "not json", nil
		}
		return "Graphs model networks. They matter.", nil
	}

	status := f.run(t, rawTextTask("Graphs"))
	require.Equal(t, PhaseCompleted, status.Phase)

	data, err := readArtifact(status.ArtifactPath)
	require.NoError(t, err)
	history := section(data, "## Recommendation History")
	assert.NotContains(t, history, "- none")
	assert.Contains(t, history, "- ")
}

func readArtifact(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}

// section returns the artifact text between the named heading and the
// next one.
func section(text, heading string) string {
	idx := strings.Index(text, heading)
	if idx < 0 {
		return ""
	}
	rest := text[idx+len(heading):]
	if next := strings.Index(rest, "\n## "); next >= 0 {
		rest = rest[:next]
	}
	return rest
}
