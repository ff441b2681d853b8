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


package orchestrator

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/didact/agent"
	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/memory"
	"github.com/poiesic/didact/storage"
)

const (
	// DefaultMaxIterations bounds the generate/assess refinement loop.
	DefaultMaxIterations = 3

	// DefaultMinQualityScore is the overall score at which refinement stops.
	DefaultMinQualityScore = 75.0

	// DefaultQueueSize is the submission queue capacity.
	DefaultQueueSize = 64
)

// Agents bundles the four pipeline agents the orchestrator drives.
type Agents struct {
	Ingestion  *agent.Ingestion
	Planning   *agent.Planning
	Generation *agent.Generation
	Quality    *agent.Quality
}

// Stats aggregates orchestrator counters over completed tasks, defined as
// plain sums so the average is always sum(scores)/count.
type Stats struct {
	TasksProcessed int
	TasksSucceeded int
	TasksFailed    int

	// AverageQuality is the mean final score of succeeded tasks, 0 when
	// none have succeeded yet.
	AverageQuality float64

	// TotalProcessingTime is the cumulative pipeline wall time.
	TotalProcessingTime time.Duration

	// Memory holds the semantic memory counters.
	Memory core.MemoryStats

	// AgentStatus maps agent name to its current status.
	AgentStatus map[string]string
}

// Orchestrator owns the task queue, the worker pool, and the per-task
// phase state machine. Workers start on construction; Shutdown stops them.
type Orchestrator struct {
	agents    Agents
	store     *memory.Store
	artifacts storage.ArtifactRepository

	queue        chan *core.Task
	workers      int
	wg           sync.WaitGroup
	ingestPool   *ants.Pool
	shuttingDown atomic.Bool

	outputDir     string
	maxIterations int
	minQuality    float64

	mu        sync.Mutex
	statuses  map[string]*TaskStatus
	succeeded int
	failed    int
	sumScores float64
	totalTime time.Duration

	logger *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithWorkers sets the worker pool size. Default is runtime.NumCPU()/2,
// minimum 1.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			n = 1
		}
		o.workers = n
		return nil
	}
}

// WithQueueSize sets the submission queue capacity.
func WithQueueSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		o.queue = make(chan *core.Task, size)
		return nil
	}
}

// WithOutputDir sets the directory artifacts are written to.
// Default is the current directory.
func WithOutputDir(dir string) Option {
	return func(o *Orchestrator) error {
		if dir != "" {
			o.outputDir = dir
		}
		return nil
	}
}

// WithMaxIterations bounds the refinement loop.
func WithMaxIterations(n int) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			n = 1
		}
		o.maxIterations = n
		return nil
	}
}

// WithMinQualityScore sets the overall score threshold on [0,100].
func WithMinQualityScore(score float64) Option {
	return func(o *Orchestrator) error {
		o.minQuality = score
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// New creates an orchestrator and starts its workers.
func New(agents Agents, store *memory.Store, artifacts storage.ArtifactRepository, opts ...Option) (*Orchestrator, error) {
	if agents.Ingestion == nil || agents.Planning == nil || agents.Generation == nil || agents.Quality == nil {
		return nil, ErrAgentsRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if artifacts == nil {
		return nil, ErrArtifactRepositoryRequired
	}

	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}

	o := &Orchestrator{
		agents:        agents,
		store:         store,
		artifacts:     artifacts,
		queue:         make(chan *core.Task, DefaultQueueSize),
		workers:       workers,
		outputDir:     ".",
		maxIterations: DefaultMaxIterations,
		minQuality:    DefaultMinQualityScore,
		statuses:      make(map[string]*TaskStatus),
		logger:        slog.Default().With("component", "orchestrator"),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	// Sources within one task ingest concurrently; the pool is shared
	// across workers.
	pool, err := ants.NewPool(o.workers * 2)
	if err != nil {
		return nil, err
	}
	o.ingestPool = pool

	o.wg.Add(o.workers)
	for i := 0; i < o.workers; i++ {
		go o.workerLoop()
	}

	return o, nil
}

// Submit validates and enqueues a task, returning its ID. Validation
// failures are synchronous; nothing is enqueued. Blocks when the queue
// is full.
func (o *Orchestrator) Submit(task *core.Task) (string, error) {
	if o.shuttingDown.Load() {
		return "", ErrShuttingDown
	}

	if err := core.ValidateTask(task); err != nil {
		return "", err
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	o.mu.Lock()
	o.statuses[task.ID] = &TaskStatus{TaskID: task.ID, Phase: PhaseQueued}
	o.mu.Unlock()

	o.queue <- task
	o.logger.Info("task queued", "task", task.ID, "topic", task.Topic)
	return task.ID, nil
}

// GetStatus returns the current status of a task.
func (o *Orchestrator) GetStatus(taskID string) (TaskStatus, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	status, ok := o.statuses[taskID]
	if !ok {
		return TaskStatus{}, ErrTaskNotFound
	}
	return *status, nil
}

// Stats returns the orchestrator's aggregate counters, the memory store
// counters, and per-agent status.
func (o *Orchestrator) Stats() Stats {
	o.mu.Lock()
	stats := Stats{
		TasksProcessed:      o.succeeded + o.failed,
		TasksSucceeded:      o.succeeded,
		TasksFailed:         o.failed,
		TotalProcessingTime: o.totalTime,
	}
	if o.succeeded > 0 {
		stats.AverageQuality = o.sumScores / float64(o.succeeded)
	}
	o.mu.Unlock()

	if memStats, err := o.store.Stats(context.Background()); err == nil {
		stats.Memory = memStats
	}

	stats.AgentStatus = map[string]string{
		o.agents.Ingestion.Name():  o.agents.Ingestion.Status().String(),
		o.agents.Planning.Name():   o.agents.Planning.Status().String(),
		o.agents.Generation.Name(): o.agents.Generation.Status().String(),
		o.agents.Quality.Name():    o.agents.Quality.Status().String(),
	}
	return stats
}

// Shutdown stops accepting new tasks and blocks until every worker has
// finished the task it holds. Queued tasks still drain before the
// sentinels are reached.
func (o *Orchestrator) Shutdown() {
	if !o.shuttingDown.CompareAndSwap(false, true) {
		return
	}

	// One nil sentinel per worker; each worker exits when it sees one.
	for i := 0; i < o.workers; i++ {
		o.queue <- nil
	}
	o.wg.Wait()
	o.ingestPool.Release()
	o.logger.Info("orchestrator stopped")
}

// workerLoop pulls tasks until it receives the nil shutdown sentinel.
// Each task runs to a terminal phase before the next is pulled.
func (o *Orchestrator) workerLoop() {
	defer o.wg.Done()

	for task := range o.queue {
		if task == nil {
			return
		}
		o.runPipeline(task)
	}
}

func (o *Orchestrator) setPhase(taskID string, phase Phase) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if status, ok := o.statuses[taskID]; ok {
		status.Phase = phase
		status.Progress = progressFor(phase)
	}
}
