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


package didact

import (
	"log/slog"

	"github.com/poiesic/didact/agent"
	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/ai/openai"
	"github.com/poiesic/didact/config"
	"github.com/poiesic/didact/fetch"
	"github.com/poiesic/didact/memory"
	"github.com/poiesic/didact/orchestrator"
	"github.com/poiesic/didact/storage"
	"github.com/poiesic/didact/storage/badger"
)

// System wires the storage backend, AI provider, semantic memory, agents,
// and orchestrator into one runnable unit.
type System struct {
	backend      *badger.Backend
	documentRepo storage.DocumentRepository
	conceptRepo  storage.ConceptRepository
	artifactRepo storage.ArtifactRepository
	provider     ai.AIProvider
	store        *memory.Store
	orch         *orchestrator.Orchestrator
	logger       *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	provider ai.AIProvider
}

// WithProvider substitutes the AI provider, bypassing the configured
// OpenAI-compatible endpoints. Used to run against the mock provider.
func WithProvider(provider ai.AIProvider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// NewSystem assembles a system from configuration. An empty DBPath opens
// an in-memory database.
func NewSystem(cfg *config.Config, opts ...SystemOption) (*System, error) {
	options := &systemOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(cfg.DBPath, cfg.DBPath == "")
	if err != nil {
		return nil, err
	}

	documentRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	conceptRepo, err := badger.NewConceptRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	artifactRepo, err := badger.NewArtifactRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(cfg.AI)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	store, err := memory.NewStore(documentRepo, conceptRepo,
		provider.Embedder(), provider.QueryExpander(),
		memory.WithChunking(cfg.ChunkSize, cfg.ChunkOverlap))
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	registry := fetch.NewRegistry(cfg.GitHubToken)

	ingestion, err := agent.NewIngestion(registry, store, provider.ConceptExtractor())
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}
	planning, err := agent.NewPlanning(provider.Generator())
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}
	generation, err := agent.NewGeneration(provider.Generator(), store)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}
	quality, err := agent.NewQuality(provider.Generator())
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	orchOpts := []orchestrator.Option{
		orchestrator.WithOutputDir(cfg.OutputDir),
		orchestrator.WithMaxIterations(cfg.MaxIterations),
		orchestrator.WithMinQualityScore(cfg.MinQualityScore),
	}
	if cfg.MaxConcurrentAgents > 0 {
		orchOpts = append(orchOpts, orchestrator.WithWorkers(cfg.MaxConcurrentAgents))
	}

	orch, err := orchestrator.New(orchestrator.Agents{
		Ingestion:  ingestion,
		Planning:   planning,
		Generation: generation,
		Quality:    quality,
	}, store, artifactRepo, orchOpts...)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &System{
		backend:      backend,
		documentRepo: documentRepo,
		conceptRepo:  conceptRepo,
		artifactRepo: artifactRepo,
		provider:     provider,
		store:        store,
		orch:         orch,
		logger:       slog.Default(),
	}, nil
}

// Orchestrator returns the task pipeline entry point.
func (s *System) Orchestrator() *orchestrator.Orchestrator {
	return s.orch
}

// Memory returns the semantic memory store.
func (s *System) Memory() *memory.Store {
	return s.store
}

// ArtifactRepository returns the persisted artifact records.
func (s *System) ArtifactRepository() storage.ArtifactRepository {
	return s.artifactRepo
}

// Close drains the orchestrator, then releases the AI provider and storage.
func (s *System) Close() error {
	s.orch.Shutdown()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.documentRepo.Close(); err != nil {
		s.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := s.conceptRepo.Close(); err != nil {
		s.logger.Error("error closing concept repository", "err", err)
		return err
	}
	if err := s.artifactRepo.Close(); err != nil {
		s.logger.Error("error closing artifact repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
