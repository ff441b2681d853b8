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


package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/core"
)

// Quality scores one content candidate. Accuracy comes from a single
// generator call with a deterministic heuristic fallback; every other
// metric is computed locally from the text.
type Quality struct {
	base
	generator ai.Generator
	logger    *slog.Logger
}

// NewQuality creates the quality assessment agent.
func NewQuality(generator ai.Generator) (*Quality, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	return &Quality{
		base:      base{name: "quality"},
		generator: generator,
		logger:    slog.Default().With("agent", "quality"),
	}, nil
}

// Process scores a candidate and derives improvement recommendations.
func (a *Quality) Process(ctx context.Context, content *core.GeneratedContent) (report *core.QualityReport, err error) {
	a.setStatus(StatusProcessing)
	defer func() { a.finish(err) }()

	if content == nil || strings.TrimSpace(content.Content) == "" {
		return nil, ErrNoGeneratedText
	}

	profile := content.ContentType.Profile()
	text := content.Content

	report = &core.QualityReport{
		Accuracy:           a.rateAccuracy(ctx, content),
		Completeness:       scoreCompleteness(content.WordCount, profile),
		Readability:        fleschReadingEase(text),
		Engagement:         scoreEngagement(text),
		Structure:          scoreStructure(text),
		FactualConsistency: scoreFactualConsistency(text),
	}
	report.OverallScore = overallScore(report)
	report.Recommendations = recommend(report)

	return report, nil
}

// rateAccuracy asks the generator to judge technical accuracy on [0,1].
// Any failure falls back to a local heuristic so assessment stays
// deterministic under a degraded generator.
func (a *Quality) rateAccuracy(ctx context.Context, content *core.GeneratedContent) float64 {
	text, err := a.generator.Generate(ctx, ai.GenerateRequest{
		System:      accuracySystemInstruction,
		Prompt:      buildAccuracyPrompt(content),
		Temperature: 0.0,
		MaxTokens:   100,
	})
	if err == nil {
		if score, perr := parseAccuracy(text); perr == nil {
			return score
		}
	}

	a.logger.Warn("accuracy rating unavailable, using heuristic",
		"title", content.Title, "err", err)
	return heuristicAccuracy(content)
}

func parseAccuracy(text string) (float64, error) {
	var parsed struct {
		Accuracy float64 `json:"accuracy"`
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return 0, ErrNoGeneratedText
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return 0, err
	}
	return clamp01(parsed.Accuracy), nil
}

// heuristicAccuracy approximates accuracy from surface signals when no
// judge is available: within length bounds and structured content earns
// more trust than a wall of text.
func heuristicAccuracy(content *core.GeneratedContent) float64 {
	score := 0.7
	profile := content.ContentType.Profile()
	if content.WordCount >= profile.MinWords && content.WordCount <= profile.MaxWords {
		score += 0.05
	}
	if strings.Contains(content.Content, "#") {
		score += 0.05
	}
	return score
}

// scoreCompleteness is the fraction of the profile's minimum length
// reached, capped at 1.
func scoreCompleteness(wordCount int, profile core.ContentProfile) float64 {
	if profile.MinWords <= 0 {
		return 1
	}
	return clamp01(float64(wordCount) / float64(profile.MinWords))
}

// scoreEngagement rewards direct address, examples, and questions.
func scoreEngagement(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.4
	if strings.Contains(lower, "example") {
		score += 0.2
	}
	if strings.Contains(lower, "you") {
		score += 0.2
	}
	if strings.Contains(lower, "?") {
		score += 0.2
	}
	return clamp01(score)
}

// scoreStructure rewards headings, paragraph breaks, and explicit
// introduction/summary sections.
func scoreStructure(text string) float64 {
	headings := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			headings++
		}
	}
	paragraphs := len(strings.Split(text, "\n\n"))

	var score float64
	if headings >= 3 {
		score += 0.5
	} else {
		score += 0.5 * float64(headings) / 3
	}
	if paragraphs >= 3 {
		score += 0.3
	} else {
		score += 0.3 * float64(paragraphs) / 3
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "introduction") || strings.Contains(lower, "intro") {
		score += 0.1
	}
	if strings.Contains(lower, "summary") || strings.Contains(lower, "conclusion") {
		score += 0.1
	}
	return clamp01(score)
}

// absoluteClaims are words that overstate certainty; each occurrence
// costs a little factual-consistency trust.
var absoluteClaims = []string{"always", "never", "guaranteed", "impossible", "every single"}

func scoreFactualConsistency(text string) float64 {
	lower := strings.ToLower(text)
	count := 0
	for _, claim := range absoluteClaims {
		count += strings.Count(lower, claim)
	}

	score := 1.0 - 0.05*float64(count)
	if score < 0.6 {
		score = 0.6
	}
	return score
}

// overallScore is the mean of the six metrics scaled to [0,100].
// Readability already lives on [0,100] and is normalized first.
func overallScore(r *core.QualityReport) float64 {
	sum := r.Accuracy +
		r.Completeness +
		r.Readability/100 +
		r.Engagement +
		r.Structure +
		r.FactualConsistency
	return sum / 6 * 100
}

// recommend turns weak metrics into textual directives for the next
// generation iteration.
func recommend(r *core.QualityReport) []string {
	var recs []string
	if r.Accuracy < 0.8 {
		recs = append(recs, "Verify technical claims against the source material.")
	}
	if r.Completeness < 0.8 {
		recs = append(recs, "Expand coverage toward the target length; sections feel thin.")
	}
	if r.Readability < 60 {
		recs = append(recs, "Shorten sentences and simplify vocabulary.")
	}
	if r.Engagement < 0.7 {
		recs = append(recs, "Add worked examples, questions, and direct address to the reader.")
	}
	if r.Structure < 0.7 {
		recs = append(recs, "Add section headings, an introduction, and a summary.")
	}
	if r.FactualConsistency < 0.8 {
		recs = append(recs, "Soften absolute claims or support them with sources.")
	}
	return recs
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
