// Package orchestrator owns the task queue, the worker pool, and the
// per-task pipeline state machine.
//
// A submitted task is validated synchronously, queued, and picked up by
// exactly one worker, which drives it through ingestion, planning, and a
// bounded generate/assess refinement loop before persisting the final
// artifact. Workers process one task at a time; only source ingestion
// fans out within a task. Shutdown is cooperative via one nil sentinel
// per worker.
package orchestrator
