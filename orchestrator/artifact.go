package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/didact/core"
)

// persistArtifact writes the final candidate as a markdown file in the
// output directory and records it in the artifact repository. Either
// failure fails the task: the contract is produced AND durably recorded.
func (o *Orchestrator) persistArtifact(ctx context.Context, task *core.Task, out refineOutcome) (string, error) {
	report := out.report
	if report == nil {
		// Assessment never produced a report; persist an explicitly
		// unscored one rather than inventing numbers.
		report = &core.QualityReport{
			Recommendations: []string{"Quality assessment was unavailable for this artifact."},
		}
	}

	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(o.outputDir, artifactFileName(task))
	body := renderArtifact(task, out.content, report, out.meets, out.history)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", err
	}

	_, err := o.artifacts.AddArtifact(ctx, &core.Artifact{
		TaskID:  task.ID,
		Content: *out.content,
		Report:  *report,
	})
	if err != nil {
		return "", err
	}

	return path, nil
}

func artifactFileName(task *core.Task) string {
	return fmt.Sprintf("%s-%s.md", slugify(task.Topic), task.ID)
}

// slugify lowercases the topic and keeps only letters, digits, and
// hyphens so the file name is shell-friendly.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "artifact"
	}
	if len(slug) > 48 {
		slug = slug[:48]
	}
	return slug
}

// renderArtifact produces the persisted markdown document. Every field
// lives under a fixed heading or key so downstream tooling can extract it.
func renderArtifact(task *core.Task, content *core.GeneratedContent, report *core.QualityReport, meets bool, history []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", content.Title)
	fmt.Fprintf(&b, "- Task: %s\n", task.ID)
	fmt.Fprintf(&b, "- Generated: %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Content type: %s\n", content.ContentType)
	fmt.Fprintf(&b, "- Iterations: %d\n", content.Iteration)
	fmt.Fprintf(&b, "- Word count: %d\n", content.WordCount)
	fmt.Fprintf(&b, "- Overall score: %.1f\n", report.OverallScore)
	fmt.Fprintf(&b, "- Meets standards: %t\n\n", meets)

	b.WriteString("## Quality Metrics\n\n")
	fmt.Fprintf(&b, "- Accuracy: %.2f\n", report.Accuracy)
	fmt.Fprintf(&b, "- Completeness: %.2f\n", report.Completeness)
	fmt.Fprintf(&b, "- Readability: %.1f\n", report.Readability)
	fmt.Fprintf(&b, "- Engagement: %.2f\n", report.Engagement)
	fmt.Fprintf(&b, "- Structure: %.2f\n", report.Structure)
	fmt.Fprintf(&b, "- Factual consistency: %.2f\n\n", report.FactualConsistency)

	b.WriteString("## Source Documents\n\n")
	if len(content.SourceDocuments) == 0 {
		b.WriteString("- none\n")
	}
	for _, id := range content.SourceDocuments {
		fmt.Fprintf(&b, "- %d\n", id)
	}
	b.WriteString("\n")

	b.WriteString("## Recommendation History\n\n")
	if len(history) == 0 {
		b.WriteString("- none\n")
	}
	for _, rec := range history {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	b.WriteString("\n")

	b.WriteString("## Content\n\n")
	b.WriteString(content.Content)
	b.WriteString("\n")

	return b.String()
}
