package agent

import (
	"fmt"
	"strings"

	"github.com/poiesic/didact/core"
)

const planningSystemInstruction = `You are an educational curriculum planner. You respond with valid JSON only, no prose and no code fences.`

const accuracySystemInstruction = `You are a strict technical reviewer. You respond with valid JSON only, no prose and no code fences.`

// buildPlanningPrompt asks for an outline and learning objectives as JSON.
func buildPlanningPrompt(req PlanRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan a %s about %q.\n", req.ContentType, req.Topic)
	if req.AudienceLevel != "" {
		fmt.Fprintf(&b, "Audience level: %s.\n", req.AudienceLevel)
	}
	if req.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s.\n", req.Tone)
	}
	for key, value := range req.Constraints {
		fmt.Fprintf(&b, "Constraint %s: %s.\n", key, value)
	}

	b.WriteString(`
Respond with a JSON object of this exact shape:
{"outline": ["section title", ...], "objectives": ["learning objective", ...]}

Use 4 to 7 outline sections and 2 to 5 objectives.`)

	return b.String()
}

// buildGenerationPrompt assembles the full generation request: plan,
// grounding context from memory, and carried recommendations.
func buildGenerationPrompt(task GenerateTask, profile core.ContentProfile, results []core.SearchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a %s about %q.\n", task.ContentType, task.Topic)
	if task.AudienceLevel != "" {
		fmt.Fprintf(&b, "Audience level: %s.\n", task.AudienceLevel)
	}
	if task.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s.\n", task.Tone)
	}
	fmt.Fprintf(&b, "%s\n", profile.FormatRules)
	fmt.Fprintf(&b, "Target length: %d to %d words.\n", profile.MinWords, profile.MaxWords)
	for key, value := range task.Constraints {
		fmt.Fprintf(&b, "Constraint %s: %s.\n", key, value)
	}

	if len(task.Plan.Outline) > 0 {
		b.WriteString("\nFollow this outline:\n")
		for _, section := range task.Plan.Outline {
			fmt.Fprintf(&b, "- %s\n", section)
		}
	}
	if len(task.Plan.Objectives) > 0 {
		b.WriteString("\nLearning objectives:\n")
		for _, obj := range task.Plan.Objectives {
			fmt.Fprintf(&b, "- %s\n", obj)
		}
	}

	if len(results) > 0 {
		b.WriteString("\nGround the content on this reference material:\n")
		for _, r := range results {
			if r.Chunk == nil {
				continue
			}
			fmt.Fprintf(&b, "---\n%s\n", r.Chunk.Content)
		}
		b.WriteString("---\n")
	}

	if len(task.Recommendations) > 0 {
		b.WriteString("\nApply these improvements from the previous review:\n")
		for _, rec := range task.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return b.String()
}

// buildAccuracyPrompt asks for a single accuracy rating as JSON.
func buildAccuracyPrompt(content *core.GeneratedContent) string {
	body := content.Content
	// A truncated body is enough to judge; keeps the review call cheap.
	if len(body) > 6000 {
		body = body[:6000]
	}

	return fmt.Sprintf(`Rate the technical accuracy of this %s titled %q on a scale from 0.0 to 1.0.

%s

Respond with a JSON object of this exact shape: {"accuracy": 0.0}`,
		content.ContentType, content.Title, body)
}
