package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/core"
)

const (
	// contextSearchLimit is how many memory chunks ground each generation.
	contextSearchLimit = 5

	// contextMinScore filters out weakly related chunks.
	contextMinScore = 0.3
)

// ContextSearcher finds stored chunks relevant to a query.
// memory.Store is the standard implementation.
type ContextSearcher interface {
	SearchRelevantContent(ctx context.Context, query string, limit int, minScore float32) ([]core.SearchResult, error)
}

// GenerateTask is one generation iteration's input.
type GenerateTask struct {
	Topic         string
	ContentType   core.ContentType
	AudienceLevel string
	Tone          string
	Constraints   map[string]string
	Plan          Plan

	// Iteration counts from 1.
	Iteration int

	// Recommendations carries the previous quality report's directives,
	// empty on the first iteration.
	Recommendations []string
}

// Generation produces one content candidate per call, grounded on
// relevant chunks from semantic memory. Generator failure propagates to
// the caller, which owns the refinement loop's abort policy.
type Generation struct {
	base
	generator ai.Generator
	searcher  ContextSearcher
	logger    *slog.Logger
}

// NewGeneration creates the generation agent.
func NewGeneration(generator ai.Generator, searcher ContextSearcher) (*Generation, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if searcher == nil {
		return nil, ErrStoreRequired
	}

	return &Generation{
		base:      base{name: "generation"},
		generator: generator,
		searcher:  searcher,
		logger:    slog.Default().With("agent", "generation"),
	}, nil
}

// Process generates one content candidate.
func (a *Generation) Process(ctx context.Context, task GenerateTask) (content *core.GeneratedContent, err error) {
	a.setStatus(StatusProcessing)
	defer func() { a.finish(err) }()

	results, err := a.searcher.SearchRelevantContent(ctx, task.Topic, contextSearchLimit, contextMinScore)
	if err != nil {
		// Grounding context is best-effort; generation proceeds without it.
		a.logger.Warn("context search failed", "topic", task.Topic, "err", err)
		results = nil
	}

	profile := task.ContentType.Profile()

	var b strings.Builder
	_, err = a.generator.GenerateStream(ctx, ai.GenerateRequest{
		System:      profile.SystemInstruction,
		Prompt:      buildGenerationPrompt(task, profile, results),
		Temperature: 0.7,
		MaxTokens:   4096,
	}, func(ctx context.Context, chunk []byte) error {
		b.Write(chunk)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil, ErrNoGeneratedText
	}

	return &core.GeneratedContent{
		Id:                     core.IDFromContent(text),
		Title:                  contentTitle(task),
		ContentType:            task.ContentType,
		Content:                text,
		SourceDocuments:        sourceDocumentIDs(results),
		WordCount:              len(strings.Fields(text)),
		Iteration:              task.Iteration,
		AppliedRecommendations: task.Recommendations,
	}, nil
}

func contentTitle(task GenerateTask) string {
	switch task.ContentType {
	case core.ContentTypeVideoScript:
		return task.Topic + ": Video Script"
	case core.ContentTypeBookChapter:
		return task.Topic + ": A Chapter"
	case core.ContentTypeInteractive:
		return task.Topic + ": An Interactive Lesson"
	default:
		return task.Topic + ": A Tutorial"
	}
}

// sourceDocumentIDs collects the distinct parent documents of the
// grounding chunks, in first-seen order.
func sourceDocumentIDs(results []core.SearchResult) []core.ID {
	var ids []core.ID
	seen := make(map[core.ID]struct{}, len(results))
	for _, r := range results {
		if r.Chunk == nil {
			continue
		}
		if _, ok := seen[r.Chunk.DocumentID]; ok {
			continue
		}
		seen[r.Chunk.DocumentID] = struct{}{}
		ids = append(ids, r.Chunk.DocumentID)
	}
	return ids
}
