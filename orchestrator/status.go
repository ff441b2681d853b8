package orchestrator

import "fmt"

// Phase is the pipeline stage a task is currently in.
// Per task the sequence is invariant: Queued, Ingesting, Planning, then
// the Generating/Assessing loop, ending in Completed or Failed.
type Phase int

const (
	PhaseQueued Phase = iota + 1
	PhaseIngesting
	PhasePlanning
	PhaseGenerating
	PhaseAssessing
	PhaseCompleted
	PhaseFailed
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseQueued:
		return "queued"
	case PhaseIngesting:
		return "ingesting"
	case PhasePlanning:
		return "planning"
	case PhaseGenerating:
		return "generating"
	case PhaseAssessing:
		return "assessing"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// progressFor maps a phase to a coarse completion estimate.
func progressFor(p Phase) float64 {
	switch p {
	case PhaseQueued:
		return 0
	case PhaseIngesting:
		return 0.2
	case PhasePlanning:
		return 0.4
	case PhaseGenerating:
		return 0.6
	case PhaseAssessing:
		return 0.8
	case PhaseCompleted, PhaseFailed:
		return 1
	}
	return 0
}

// TaskStatus is the observable state of one submitted task.
type TaskStatus struct {
	TaskID string
	Phase  Phase

	// Progress is a best-effort completion estimate in [0,1].
	Progress float64

	// Reason holds the human-readable failure cause for failed tasks.
	Reason string

	// MeetsStandards reports whether the final candidate reached the
	// quality threshold. Meaningful only for completed tasks.
	MeetsStandards bool

	// Iterations is the number of generate/assess rounds that ran.
	Iterations int

	// OverallScore is the final quality score for completed tasks.
	OverallScore float64

	// ArtifactPath is the persisted artifact file for completed tasks.
	ArtifactPath string
}
