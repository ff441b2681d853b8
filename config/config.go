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


// Package config loads didact's runtime configuration from the
// environment, with optional .env file support.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/poiesic/didact/ai"
	"github.com/poiesic/didact/memory"
	"github.com/poiesic/didact/orchestrator"
)

// envPrefix namespaces every variable didact reads.
const envPrefix = "DIDACT_"

var (
	// ErrInvalidChunking indicates chunk overlap is not smaller than chunk size.
	ErrInvalidChunking = errors.New("chunk overlap must be smaller than chunk size")

	// ErrInvalidQualityScore indicates a threshold outside [0,100].
	ErrInvalidQualityScore = errors.New("min quality score must be in [0,100]")
)

// Config holds everything needed to assemble a didact system.
type Config struct {
	// DBPath is the badger database directory. Empty selects an
	// in-memory database.
	DBPath string

	// OutputDir is where completed artifacts are written.
	OutputDir string

	// MaxConcurrentAgents sizes the orchestrator worker pool.
	// Zero lets the orchestrator pick its default.
	MaxConcurrentAgents int

	// MaxIterations bounds the generate/assess refinement loop.
	MaxIterations int

	// MinQualityScore is the refinement stop threshold on [0,100].
	MinQualityScore float64

	// ChunkSize and ChunkOverlap configure memory store chunking.
	ChunkSize    int
	ChunkOverlap int

	// GitHubToken authenticates repository source fetching. Optional.
	GitHubToken string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// AI configures the embedding and generation endpoints.
	AI *ai.Config
}

// Default returns the configuration didact runs with when no environment
// is set.
func Default() *Config {
	return &Config{
		OutputDir:       "./output",
		MaxIterations:   orchestrator.DefaultMaxIterations,
		MinQualityScore: orchestrator.DefaultMinQualityScore,
		ChunkSize:       memory.DefaultChunkSize,
		ChunkOverlap:    memory.DefaultChunkOverlap,
		LogLevel:        "info",
		AI:              ai.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, an optional .env file, and
// the process environment, then validates it. A missing .env file is not
// an error; a named file that fails to parse is.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	} else {
		// Best-effort default .env in the working directory.
		_ = godotenv.Load()
	}

	cfg := Default()
	if err := cfg.fromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fromEnv() error {
	var err error

	c.DBPath = envString("DB_PATH", c.DBPath)
	c.OutputDir = envString("OUTPUT_DIR", c.OutputDir)
	c.GitHubToken = envString("GITHUB_TOKEN", c.GitHubToken)
	c.LogLevel = envString("LOG_LEVEL", c.LogLevel)

	if c.MaxConcurrentAgents, err = envInt("MAX_CONCURRENT_AGENTS", c.MaxConcurrentAgents); err != nil {
		return err
	}
	if c.MaxIterations, err = envInt("MAX_ITERATIONS", c.MaxIterations); err != nil {
		return err
	}
	if c.MinQualityScore, err = envFloat("MIN_QUALITY_SCORE", c.MinQualityScore); err != nil {
		return err
	}
	if c.ChunkSize, err = envInt("CHUNK_SIZE", c.ChunkSize); err != nil {
		return err
	}
	if c.ChunkOverlap, err = envInt("CHUNK_OVERLAP", c.ChunkOverlap); err != nil {
		return err
	}

	c.AI.EmbeddingHost = envString("EMBEDDING_HOST", c.AI.EmbeddingHost)
	c.AI.ChatHost = envString("CHAT_HOST", c.AI.ChatHost)
	c.AI.EmbeddingModel = envString("EMBEDDING_MODEL", c.AI.EmbeddingModel)
	c.AI.ChatModel = envString("CHAT_MODEL", c.AI.ChatModel)
	c.AI.Token = envString("AI_TOKEN", c.AI.Token)
	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.ChunkSize < 1 || c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: size %d, overlap %d", ErrInvalidChunking, c.ChunkSize, c.ChunkOverlap)
	}
	if c.MinQualityScore < 0 || c.MinQualityScore > 100 {
		return fmt.Errorf("%w: %v", ErrInvalidQualityScore, c.MinQualityScore)
	}
	if c.MaxIterations < 1 {
		c.MaxIterations = 1
	}

	c.AI.Normalize()
	return c.AI.Validate()
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s%s: %w", envPrefix, key, err)
	}
	return parsed, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s%s: %w", envPrefix, key, err)
	}
	return parsed, nil
}
