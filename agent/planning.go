package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/core"
)

// PlanRequest describes what the plan should cover.
type PlanRequest struct {
	Topic         string
	ContentType   core.ContentType
	AudienceLevel string
	Tone          string
	Constraints   map[string]string
}

// Plan is the outline and learning objectives the generation phase follows.
type Plan struct {
	Outline    []string
	Objectives []string

	// Degraded is true when the plan was synthesized locally because the
	// generator call failed.
	Degraded bool
}

// Planning produces a content plan with a single generator call. It never
// fails: any generator or parse failure degrades to a synthesized plan.
type Planning struct {
	base
	generator ai.Generator
	logger    *slog.Logger
}

// NewPlanning creates the planning agent.
func NewPlanning(generator ai.Generator) (*Planning, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	return &Planning{
		base:      base{name: "planning"},
		generator: generator,
		logger:    slog.Default().With("agent", "planning"),
	}, nil
}

// Process builds a plan for the request. The returned error is always nil;
// it is kept in the signature for the shared agent shape.
func (a *Planning) Process(ctx context.Context, req PlanRequest) (Plan, error) {
	a.setStatus(StatusProcessing)
	defer a.finish(nil)

	text, err := a.generator.Generate(ctx, ai.GenerateRequest{
		System:      planningSystemInstruction,
		Prompt:      buildPlanningPrompt(req),
		Temperature: 0.3,
		MaxTokens:   800,
	})
	if err != nil {
		a.logger.Warn("planning generation failed, using fallback plan",
			"topic", req.Topic, "err", err)
		return fallbackPlan(req), nil
	}

	plan, err := parsePlan(text)
	if err != nil {
		a.logger.Warn("unparseable plan, using fallback plan",
			"topic", req.Topic, "err", err)
		return fallbackPlan(req), nil
	}
	return plan, nil
}

// parsePlan extracts the JSON plan object from generator output that may
// be wrapped in code fences or prose.
func parsePlan(text string) (Plan, error) {
	var parsed struct {
		Outline    []string `json:"outline"`
		Objectives []string `json:"objectives"`
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Plan{}, errors.New("no json object in plan output")
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return Plan{}, err
	}
	if len(parsed.Outline) == 0 {
		return Plan{}, errors.New("plan has no outline")
	}

	return Plan{Outline: parsed.Outline, Objectives: parsed.Objectives}, nil
}

// fallbackPlan synthesizes a generic plan so the pipeline always has an
// outline to generate against.
func fallbackPlan(req PlanRequest) Plan {
	topic := req.Topic
	return Plan{
		Outline: []string{
			"Introduction to " + topic,
			"Core concepts",
			"Worked examples",
			"Common pitfalls",
			"Summary and next steps",
		},
		Objectives: []string{
			"Understand the fundamentals of " + topic,
			"Apply " + topic + " to practical problems",
			"Recognize common mistakes when working with " + topic,
		},
		Degraded: true,
	}
}
