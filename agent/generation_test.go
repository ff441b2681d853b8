package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/ai/mock"
	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/memory"
	"github.com/poiesic/didact/storage/badger"
)

type stubSearcher struct {
	results []core.SearchResult
	err     error
}

func (s *stubSearcher) SearchRelevantContent(ctx context.Context, query string, limit int, minScore float32) ([]core.SearchResult, error) {
	return s.results, s.err
}

func generateTask() GenerateTask {
	return GenerateTask{
		Topic:       "Graphs",
		ContentType: core.ContentTypeTutorial,
		Plan:        fallbackPlan(PlanRequest{Topic: "Graphs"}),
		Iteration:   1,
	}
}

func TestGenerationProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("produces candidate with grounding context", func(t *testing.T) {
		// A memory store whose embedder maps everything to the same
		// vector, so the stored document always matches the topic.
		docRepo, conceptRepo, _, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		t.Cleanup(func() { backend.Close() })

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0, 0}, nil
		}
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			vecs := make([][]float32, len(texts))
			for i := range texts {
				vecs[i] = []float32{1, 0, 0}
			}
			return vecs, nil
		}

		store, err := memory.NewStore(docRepo, conceptRepo, embedder, nil)
		require.NoError(t, err)

		stored, err := store.StoreDocument(ctx, &core.SourceDocument{
			Title: "Graphs", Content: graphText, Kind: core.SourceKindRawText,
		})
		require.NoError(t, err)

		agent, err := NewGeneration(mock.NewMockGenerator(), store)
		require.NoError(t, err)

		content, err := agent.Process(ctx, generateTask())
		require.NoError(t, err)

		assert.Equal(t, "Graphs: A Tutorial", content.Title)
		assert.Equal(t, core.ContentTypeTutorial, content.ContentType)
		assert.Equal(t, 1, content.Iteration)
		assert.Greater(t, content.WordCount, 100)
		assert.Contains(t, content.SourceDocuments, stored.DocumentID)
		assert.Equal(t, StatusCompleted, agent.Status())
	})

	t.Run("carries recommendations into the prompt", func(t *testing.T) {
		var prompt string
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
			prompt = req.Prompt
			return "generated body text", nil
		}

		agent, err := NewGeneration(generator, &stubSearcher{})
		require.NoError(t, err)

		task := generateTask()
		task.Iteration = 2
		task.Recommendations = []string{"Add more worked examples."}

		content, err := agent.Process(ctx, task)
		require.NoError(t, err)

		assert.Contains(t, prompt, "Add more worked examples.")
		assert.Equal(t, task.Recommendations, content.AppliedRecommendations)
		assert.Equal(t, 2, content.Iteration)
	})

	t.Run("search failure is not fatal", func(t *testing.T) {
		agent, err := NewGeneration(mock.NewMockGenerator(), &stubSearcher{err: errors.New("index busy")})
		require.NoError(t, err)

		content, err := agent.Process(ctx, generateTask())
		require.NoError(t, err)
		assert.Empty(t, content.SourceDocuments)
		assert.Greater(t, content.WordCount, 0)
	})

	t.Run("generator failure propagates", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
			return "", errors.New("model offline")
		}

		agent, err := NewGeneration(generator, &stubSearcher{})
		require.NoError(t, err)

		_, err = agent.Process(ctx, generateTask())
		assert.Error(t, err)
		assert.Equal(t, StatusError, agent.Status())
	})

	t.Run("empty output is an error", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
			return "   \n", nil
		}

		agent, err := NewGeneration(generator, &stubSearcher{})
		require.NoError(t, err)

		_, err = agent.Process(ctx, generateTask())
		assert.ErrorIs(t, err, ErrNoGeneratedText)
	})

	t.Run("word count matches content", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
			return "one two three four five", nil
		}

		agent, err := NewGeneration(generator, &stubSearcher{})
		require.NoError(t, err)

		content, err := agent.Process(ctx, generateTask())
		require.NoError(t, err)
		assert.Equal(t, 5, content.WordCount)
		assert.Equal(t, len(strings.Fields(content.Content)), content.WordCount)
	})
}
