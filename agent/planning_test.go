package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/ai/mock"
	"github.com/poiesic/didact/core"
)

func planRequest() PlanRequest {
	return PlanRequest{
		Topic:         "Graphs",
		ContentType:   core.ContentTypeTutorial,
		AudienceLevel: "beginner",
	}
}

func TestPlanningProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("parses generated plan", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
			return `{"outline": ["Intro", "Traversals", "Wrap-up"], "objectives": ["Know BFS"]}`, nil
		}

		agent, err := NewPlanning(generator)
		require.NoError(t, err)

		plan, err := agent.Process(ctx, planRequest())
		require.NoError(t, err)

		assert.False(t, plan.Degraded)
		assert.Equal(t, []string{"Intro", "Traversals", "Wrap-up"}, plan.Outline)
		assert.Equal(t, []string{"Know BFS"}, plan.Objectives)
		assert.Equal(t, StatusCompleted, agent.Status())
	})

	t.Run("tolerates fenced json", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
			return "```json\n{\"outline\": [\"Intro\"], \"objectives\": []}\n```", nil
		}

		agent, err := NewPlanning(generator)
		require.NoError(t, err)

		plan, err := agent.Process(ctx, planRequest())
		require.NoError(t, err)
		assert.False(t, plan.Degraded)
		assert.Equal(t, []string{"Intro"}, plan.Outline)
	})

	t.Run("generator failure degrades to fallback", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
			return "", errors.New("model offline")
		}

		agent, err := NewPlanning(generator)
		require.NoError(t, err)

		plan, err := agent.Process(ctx, planRequest())
		require.NoError(t, err)

		assert.True(t, plan.Degraded)
		assert.NotEmpty(t, plan.Outline)
		assert.NotEmpty(t, plan.Objectives)
		assert.Contains(t, plan.Outline[0], "Graphs")
	})

	t.Run("unparseable output degrades to fallback", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, req ai.GenerateRequest) (string, error) {
			return "Here is my plan: first do the intro, then the rest.", nil
		}

		agent, err := NewPlanning(generator)
		require.NoError(t, err)

		plan, err := agent.Process(ctx, planRequest())
		require.NoError(t, err)
		assert.True(t, plan.Degraded)
	})

	t.Run("nil generator rejected", func(t *testing.T) {
		_, err := NewPlanning(nil)
		assert.ErrorIs(t, err, ErrGeneratorRequired)
	})
}
