package didact

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/didact/ai/mock"
	"github.com/poiesic/didact/config"
	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/orchestrator"
)

// graphTheoryIntro is roughly 600 characters of plain prose, enough to
// clear the raw-text ingestion floor.
const graphTheoryIntro = "Graph theory is the study of graphs, mathematical structures " +
	"used to model pairwise relations between objects. A graph consists of vertices, " +
	"also called nodes, connected by edges. Undirected graphs link vertices " +
	"symmetrically while directed graphs give each edge an orientation. Graphs model " +
	"social networks, transport systems, dependency resolution, and many other " +
	"problems in discrete mathematics. The classic algorithms every student meets " +
	"first are breadth-first search and depth-first search, followed by shortest " +
	"path methods such as Dijkstra's algorithm and topological sorting for directed " +
	"acyclic graphs."

func newTestSystem(t *testing.T) *System {
	t.Helper()

	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.MaxIterations = 2
	cfg.MinQualityScore = 70
	cfg.MaxConcurrentAgents = 1

	sys, err := NewSystem(cfg, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { sys.Close() })
	return sys
}

func TestSystemEndToEnd(t *testing.T) {
	sys := newTestSystem(t)

	id, err := sys.Orchestrator().Submit(&core.Task{
		Topic:       "Graphs",
		ContentType: core.ContentTypeTutorial,
		Sources: []core.Source{
			{Kind: core.SourceKindRawText, Locator: graphTheoryIntro},
		},
	})
	require.NoError(t, err)

	// Shutdown drains the queue, so the terminal state is observable.
	sys.Orchestrator().Shutdown()

	status, err := sys.Orchestrator().GetStatus(id)
	require.NoError(t, err)

	require.Equal(t, orchestrator.PhaseCompleted, status.Phase)
	assert.True(t, status.MeetsStandards)
	assert.GreaterOrEqual(t, status.OverallScore, 70.0)
	assert.GreaterOrEqual(t, status.Iterations, 1)
	assert.LessOrEqual(t, status.Iterations, 2)

	// Ingestion populated memory.
	memStats, err := sys.Memory().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, memStats.Documents)
	assert.Greater(t, memStats.Chunks, 0)
	assert.Greater(t, memStats.Concepts, 0)

	// The artifact is on disk with the contract fields present.
	data, err := os.ReadFile(status.ArtifactPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "- Content type: tutorial")
	assert.Contains(t, text, "- Overall score: ")
	assert.True(t, strings.HasSuffix(status.ArtifactPath, ".md"))

	// And durably recorded.
	artifacts, err := sys.ArtifactRepository().GetArtifactsByTask(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, artifacts, 1)
}

func TestSystemRejectsInvalidTask(t *testing.T) {
	sys := newTestSystem(t)

	_, err := sys.Orchestrator().Submit(&core.Task{
		Topic:       "Graphs",
		ContentType: core.ContentTypeTutorial,
		Sources:     []core.Source{},
	})
	assert.ErrorIs(t, err, core.ErrInvalidTask)
}

func TestSystemCloseIsClean(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()

	sys, err := NewSystem(cfg, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	assert.NoError(t, sys.Close())
}
