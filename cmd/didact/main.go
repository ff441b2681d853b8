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


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/didact"
	"github.com/poiesic/didact/ai/mock"
	"github.com/poiesic/didact/config"
	"github.com/poiesic/didact/core"
	"github.com/poiesic/didact/orchestrator"
)

func main() {
	app := &cli.App{
		Name:  "didact",
		Usage: "Agentic educational content generation pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env configuration file",
			},
			&cli.BoolFlag{
				Name:  "mock-ai",
				Usage: "Use the deterministic mock AI provider instead of configured endpoints",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Generate educational content from one or more sources",
				Action: generateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "topic",
						Aliases:  []string{"t"},
						Usage:    "Topic the content should teach",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "content-type",
						Aliases: []string{"c"},
						Usage:   "Content type (video-script, tutorial, book-chapter, interactive)",
						Value:   "tutorial",
					},
					&cli.StringSliceFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Source as kind=locator (website=, repository=, raw-text=, document=); repeatable",
					},
					&cli.StringFlag{
						Name:  "audience",
						Usage: "Audience level (e.g. beginner, intermediate, advanced)",
					},
					&cli.StringFlag{
						Name:  "tone",
						Usage: "Writing tone (e.g. formal, conversational)",
					},
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Crawl depth for website sources",
						Value: 1,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show orchestrator, memory, and agent statistics",
				Action: statsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newSystem(c *cli.Context) (*didact.System, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	var opts []didact.SystemOption
	if c.Bool("mock-ai") {
		opts = append(opts, didact.WithProvider(mock.NewMockProvider()))
	}

	sys, err := didact.NewSystem(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("assembling system: %w", err)
	}
	return sys, nil
}

func generateCommand(c *cli.Context) error {
	contentType, err := core.ParseContentType(c.String("content-type"))
	if err != nil {
		return err
	}

	sources, err := parseSources(c.StringSlice("source"), c.Int("depth"))
	if err != nil {
		return err
	}

	sys, err := newSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	taskID, err := sys.Orchestrator().Submit(&core.Task{
		Topic:         c.String("topic"),
		ContentType:   contentType,
		AudienceLevel: c.String("audience"),
		Tone:          c.String("tone"),
		Sources:       sources,
	})
	if err != nil {
		return fmt.Errorf("submitting task: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Task %s queued\n", taskID)

	status := waitForTask(sys.Orchestrator(), taskID)
	if status.Phase != orchestrator.PhaseCompleted {
		return fmt.Errorf("task failed: %s", status.Reason)
	}

	fmt.Fprintf(os.Stderr, "Completed in %d iteration(s), score %.1f (meets standards: %t)\n",
		status.Iterations, status.OverallScore, status.MeetsStandards)
	fmt.Println(status.ArtifactPath)
	return nil
}

func statsCommand(c *cli.Context) error {
	sys, err := newSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	stats := sys.Orchestrator().Stats()

	fmt.Printf("Tasks processed:  %d (succeeded %d, failed %d)\n",
		stats.TasksProcessed, stats.TasksSucceeded, stats.TasksFailed)
	fmt.Printf("Average quality:  %.1f\n", stats.AverageQuality)
	fmt.Printf("Processing time:  %s\n", stats.TotalProcessingTime)
	fmt.Printf("Documents:        %d\n", stats.Memory.Documents)
	fmt.Printf("Chunks:           %d\n", stats.Memory.Chunks)
	fmt.Printf("Concepts:         %d\n", stats.Memory.Concepts)
	fmt.Printf("Relationships:    %d\n", stats.Memory.Relationships)
	for name, status := range stats.AgentStatus {
		fmt.Printf("Agent %-12s%s\n", name+":", status)
	}
	return nil
}

// parseSources converts kind=locator flags into Source descriptors.
func parseSources(specs []string, depth int) ([]core.Source, error) {
	sources := make([]core.Source, 0, len(specs))
	for _, spec := range specs {
		kindName, locator, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid source %q: want kind=locator", spec)
		}

		kind, err := core.ParseSourceKind(kindName)
		if err != nil {
			return nil, err
		}

		src := core.Source{Kind: kind, Locator: locator}
		if kind == core.SourceKindWebsite {
			src.Depth = depth
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// waitForTask polls until the task reaches a terminal phase.
func waitForTask(orch *orchestrator.Orchestrator, taskID string) orchestrator.TaskStatus {
	for {
		status, err := orch.GetStatus(taskID)
		if err == nil &&
			(status.Phase == orchestrator.PhaseCompleted || status.Phase == orchestrator.PhaseFailed) {
			return status
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
