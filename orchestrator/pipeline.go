package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/poiesic/didact/agent"
	"github.com/poiesic/didact/core"
)

// runPipeline drives one task from Ingesting to a terminal phase. There
// is no mid-pipeline cancellation: once dequeued, a task runs to
// Completed or Failed.
func (o *Orchestrator) runPipeline(task *core.Task) {
	ctx := context.Background()
	start := time.Now()

	o.setPhase(task.ID, PhaseIngesting)
	if err := o.runIngestion(ctx, task); err != nil {
		o.failTask(task, start, err)
		return
	}

	o.setPhase(task.ID, PhasePlanning)
	plan, _ := o.agents.Planning.Process(ctx, agent.PlanRequest{
		Topic:         task.Topic,
		ContentType:   task.ContentType,
		AudienceLevel: task.AudienceLevel,
		Tone:          task.Tone,
		Constraints:   task.Constraints,
	})
	if plan.Degraded {
		o.logger.Warn("planning degraded to fallback", "task", task.ID)
	}

	outcome, err := o.refine(ctx, task, plan)
	if err != nil {
		o.failTask(task, start, err)
		return
	}

	path, err := o.persistArtifact(ctx, task, outcome)
	if err != nil {
		o.failTask(task, start, fmt.Errorf("persisting artifact: %w", err))
		return
	}

	elapsed := time.Since(start)
	o.mu.Lock()
	o.succeeded++
	if outcome.report != nil {
		o.sumScores += outcome.report.OverallScore
	}
	o.totalTime += elapsed
	if status, ok := o.statuses[task.ID]; ok {
		status.Phase = PhaseCompleted
		status.Progress = 1
		status.MeetsStandards = outcome.meets
		status.Iterations = outcome.iterations
		if outcome.report != nil {
			status.OverallScore = outcome.report.OverallScore
		}
		status.ArtifactPath = path
	}
	o.mu.Unlock()

	o.logger.Info("task completed",
		"task", task.ID,
		"iterations", outcome.iterations,
		"meets_standards", outcome.meets,
		"elapsed", elapsed)
}

// runIngestion fans the task's sources out on the shared pool. A failing
// source is logged and skipped; only zero successes fails the task.
func (o *Orchestrator) runIngestion(ctx context.Context, task *core.Task) error {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)

	for i := range task.Sources {
		src := task.Sources[i]
		wg.Add(1)

		err := o.ingestPool.Submit(func() {
			defer wg.Done()

			result, err := o.agents.Ingestion.Process(ctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				o.logger.Warn("source ingestion failed",
					"task", task.ID, "kind", src.Kind, "err", err)
				failures = append(failures, err)
				return
			}
			succeeded++
			o.logger.Info("source ingested",
				"task", task.ID,
				"document", result.DocumentID,
				"chunks", result.Chunks,
				"skipped", result.Skipped)
		})
		if err != nil {
			// Pool refused the job; run it inline rather than lose it.
			wg.Done()
			if _, perr := o.agents.Ingestion.Process(ctx, src); perr != nil {
				mu.Lock()
				failures = append(failures, perr)
				mu.Unlock()
			} else {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}
	}
	wg.Wait()

	if succeeded == 0 {
		return fmt.Errorf("%w: %w", ErrNoContentIngested, errors.Join(failures...))
	}
	return nil
}

// refineOutcome is what the generate/assess loop hands to persistence.
type refineOutcome struct {
	content    *core.GeneratedContent
	report     *core.QualityReport
	meets      bool
	iterations int

	// history accumulates every recommendation issued across iterations.
	history []string
}

// refine runs the bounded generate/assess loop: at most maxIterations
// rounds, stopping at the first report at or above the quality threshold.
func (o *Orchestrator) refine(ctx context.Context, task *core.Task, plan agent.Plan) (refineOutcome, error) {
	var (
		out  refineOutcome
		recs []string
	)

	for iter := 1; iter <= o.maxIterations; iter++ {
		o.setPhase(task.ID, PhaseGenerating)
		content, err := o.agents.Generation.Process(ctx, agent.GenerateTask{
			Topic:           task.Topic,
			ContentType:     task.ContentType,
			AudienceLevel:   task.AudienceLevel,
			Tone:            task.Tone,
			Constraints:     task.Constraints,
			Plan:            plan,
			Iteration:       iter,
			Recommendations: recs,
		})
		if err != nil {
			// Generation failure aborts the loop. With no candidate at
			// all the task fails; otherwise the last good one stands.
			if out.content == nil {
				return out, fmt.Errorf("generation failed: %w", err)
			}
			o.logger.Warn("generation failed mid-loop, keeping last candidate",
				"task", task.ID, "iteration", iter, "err", err)
			return out, nil
		}
		out.content = content
		out.iterations = iter

		o.setPhase(task.ID, PhaseAssessing)
		report, err := o.agents.Quality.Process(ctx, content)
		if err != nil {
			o.logger.Warn("assessment failed, stopping refinement",
				"task", task.ID, "iteration", iter, "err", err)
			return out, nil
		}
		out.report = report
		out.history = append(out.history, report.Recommendations...)

		o.logger.Info("candidate assessed",
			"task", task.ID,
			"iteration", iter,
			"score", report.OverallScore)

		if report.OverallScore >= o.minQuality {
			out.meets = true
			return out, nil
		}
		recs = report.Recommendations
	}

	return out, nil
}

func (o *Orchestrator) failTask(task *core.Task, start time.Time, err error) {
	elapsed := time.Since(start)

	o.mu.Lock()
	o.failed++
	o.totalTime += elapsed
	if status, ok := o.statuses[task.ID]; ok {
		status.Phase = PhaseFailed
		status.Progress = 1
		status.Reason = err.Error()
	}
	o.mu.Unlock()

	o.logger.Error("task failed", "task", task.ID, "err", err, "elapsed", elapsed)
}
