package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/didact/ai/mock"
	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/fetch"
	"github.com/poiesic/didact/memory"
	"github.com/poiesic/didact/storage/badger"
)

const graphText = "Graph theory studies graphs, mathematical structures used to model " +
	"pairwise relations between objects. A graph consists of vertices connected " +
	"by edges. Directed graphs distinguish edge orientation while undirected " +
	"graphs do not. Common algorithms include breadth-first search, depth-first " +
	"search, and shortest path computation with Dijkstra's method."

type stubFetcher struct {
	result fetch.Result
	err    error
}

func (s *stubFetcher) Fetch(ctx context.Context, src core.Source) (fetch.Result, error) {
	return s.result, s.err
}

func newTestMemory(t *testing.T) *memory.Store {
	t.Helper()

	docRepo, conceptRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	store, err := memory.NewStore(docRepo, conceptRepo, mock.NewMockEmbedder(), nil)
	require.NoError(t, err)
	return store
}

func TestIngestionProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("stores fetched source", func(t *testing.T) {
		store := newTestMemory(t)
		agent, err := NewIngestion(
			&stubFetcher{result: fetch.Result{Title: "Graphs", Text: graphText}},
			store, mock.NewMockConceptExtractor())
		require.NoError(t, err)

		result, err := agent.Process(ctx, core.Source{Kind: core.SourceKindRawText, Locator: graphText})
		require.NoError(t, err)

		assert.False(t, result.Skipped)
		assert.NotZero(t, result.DocumentID)
		assert.Greater(t, result.Chunks, 0)
		assert.Greater(t, result.Concepts, 0)
		assert.Equal(t, StatusCompleted, agent.Status())

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Documents)
		assert.Equal(t, result.Concepts, stats.Concepts)
		assert.Greater(t, stats.Relationships, 0)
	})

	t.Run("second ingest of same content is skipped", func(t *testing.T) {
		store := newTestMemory(t)
		agent, err := NewIngestion(
			&stubFetcher{result: fetch.Result{Title: "Graphs", Text: graphText}},
			store, nil)
		require.NoError(t, err)

		src := core.Source{Kind: core.SourceKindRawText, Locator: graphText}

		first, err := agent.Process(ctx, src)
		require.NoError(t, err)
		require.False(t, first.Skipped)

		second, err := agent.Process(ctx, src)
		require.NoError(t, err)
		assert.True(t, second.Skipped)
		assert.Equal(t, first.DocumentID, second.DocumentID)
		assert.Zero(t, second.Chunks)
	})

	t.Run("too short content is rejected", func(t *testing.T) {
		agent, err := NewIngestion(
			&stubFetcher{result: fetch.Result{Title: "Tiny", Text: "too short"}},
			newTestMemory(t), nil)
		require.NoError(t, err)

		_, err = agent.Process(ctx, core.Source{Kind: core.SourceKindRawText, Locator: "too short"})
		assert.ErrorIs(t, err, ErrContentTooShort)
		assert.Equal(t, StatusError, agent.Status())
	})

	t.Run("crawled sources need more text", func(t *testing.T) {
		// 300 bytes passes the raw-text floor but not the website floor.
		text := strings.Repeat("crawled page text ", 17)
		agent, err := NewIngestion(
			&stubFetcher{result: fetch.Result{Title: "Site", Text: text}},
			newTestMemory(t), nil)
		require.NoError(t, err)

		_, err = agent.Process(ctx, core.Source{Kind: core.SourceKindWebsite, Locator: "http://example.com"})
		assert.ErrorIs(t, err, ErrContentTooShort)
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		agent, err := NewIngestion(
			&stubFetcher{err: errors.New("connection refused")},
			newTestMemory(t), nil)
		require.NoError(t, err)

		_, err = agent.Process(ctx, core.Source{Kind: core.SourceKindWebsite, Locator: "http://example.com"})
		assert.Error(t, err)
		assert.Equal(t, StatusError, agent.Status())
	})

	t.Run("extraction failure is not fatal", func(t *testing.T) {
		extractor := mock.NewMockConceptExtractor()
		extractor.ExtractConceptsFunc = func(ctx context.Context, text string) ([]string, error) {
			return nil, errors.New("model unavailable")
		}

		agent, err := NewIngestion(
			&stubFetcher{result: fetch.Result{Title: "Graphs", Text: graphText}},
			newTestMemory(t), extractor)
		require.NoError(t, err)

		result, err := agent.Process(ctx, core.Source{Kind: core.SourceKindRawText, Locator: graphText})
		require.NoError(t, err)
		assert.False(t, result.Skipped)
		assert.Zero(t, result.Concepts)
	})

	t.Run("invalid source is rejected", func(t *testing.T) {
		agent, err := NewIngestion(&stubFetcher{}, newTestMemory(t), nil)
		require.NoError(t, err)

		_, err = agent.Process(ctx, core.Source{Kind: core.SourceKindRawText})
		assert.ErrorIs(t, err, core.ErrInvalidSource)
	})
}

func TestClassifyDocType(t *testing.T) {
	tests := []struct {
		name  string
		title string
		text  string
		want  string
	}{
		{name: "tutorial from title", title: "A Graph Tutorial", text: "body", want: core.DocTypeTutorial},
		{name: "getting started", title: "Getting Started with Go", text: "body", want: core.DocTypeTutorial},
		{name: "reference", title: "Package API Reference", text: "body", want: core.DocTypeReference},
		{name: "example", title: "Code Samples", text: "an example program", want: core.DocTypeExample},
		{name: "default overview", title: "Graphs", text: "general prose", want: core.DocTypeOverview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyDocType(tt.title, tt.text))
		})
	}
}
