package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/didact/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// QueryExpander implements ai.QueryExpander using OpenAI-compatible chat APIs.
type QueryExpander struct {
	client llms.Model
	logger *slog.Logger
}

// expansion is the wrapper structure for the LLM's JSON response.
type expansion struct {
	Queries []string `json:"queries"`
}

// newQueryExpander is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryExpander(config *ai.Config) (*QueryExpander, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryExpander{
		client: client,
		logger: slog.Default().With("component", "openai-expander"),
	}, nil
}

// NewQueryExpander creates a new query expander using the provided configuration.
//
// Returns ai.QueryExpander interface to enforce abstraction.
func NewQueryExpander(config *ai.Config) (ai.QueryExpander, error) {
	return newQueryExpander(config)
}

// ExpandQuery rewrites a search query into variations. The original query
// is always the first element of the result.
func (e *QueryExpander) ExpandQuery(ctx context.Context, query string) ([]string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildExpansionPrompt(ai.DefaultMaxQueryVariations - 1)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("failed to expand query", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return []string{query}, nil
	}

	responseText := stripCodeFences(response.Choices[0].Content)
	responseText = repairJSON(responseText)

	var result expansion
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		e.logger.Warn("error parsing expander response", "response", responseText, "err", err)
		return nil, err
	}

	// Original query first, variations after, no duplicates.
	queries := []string{query}
	seen := map[string]struct{}{strings.ToLower(query): {}}
	for _, q := range result.Queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(q)]; ok {
			continue
		}
		seen[strings.ToLower(q)] = struct{}{}
		queries = append(queries, q)
		if len(queries) >= ai.DefaultMaxQueryVariations {
			break
		}
	}

	e.logger.Debug("expanded query", "variations", len(queries))
	return queries, nil
}
