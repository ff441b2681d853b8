// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


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

// ConceptExtractor implements ai.ConceptExtractor using OpenAI-compatible chat APIs.
type ConceptExtractor struct {
	client      llms.Model
	maxConcepts int
	logger      *slog.Logger
}

// extraction is the wrapper structure for the LLM's JSON response.
type extraction struct {
	Concepts []string `json:"concepts"`
}

// newConceptExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newConceptExtractor(config *ai.Config) (*ConceptExtractor, error) {
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

	return &ConceptExtractor{
		client:      client,
		maxConcepts: config.MaxConcepts,
		logger:      slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewConceptExtractor creates a new concept extractor using the provided configuration.
//
// Returns ai.ConceptExtractor interface to enforce abstraction.
func NewConceptExtractor(config *ai.Config) (ai.ConceptExtractor, error) {
	return newConceptExtractor(config)
}

// ExtractConcepts extracts key concept terms from text using an LLM.
// Returns at most MaxConcepts terms, most important first.
func (e *ConceptExtractor) ExtractConcepts(ctx context.Context, text string) ([]string, error) {
	// Scrub input text
	text = scrubString(text)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildExtractionPrompt(e.maxConcepts)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result extraction
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []string{}, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Normalize, deduplicate, and cap
	seen := make(map[string]struct{}, len(result.Concepts))
	terms := make([]string, 0, len(result.Concepts))
	for _, c := range result.Concepts {
		term := strings.ToLower(strings.TrimSpace(c))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
		if len(terms) >= e.maxConcepts {
			break
		}
	}

	e.logger.Debug("extracted concepts",
		"total", len(result.Concepts),
		"kept", len(terms))

	return terms, nil
}

// stripCodeFences removes markdown code fences around an LLM JSON response.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
