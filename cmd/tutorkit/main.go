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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/tutorkit"
	"github.com/poiesic/tutorkit/ai"
	"github.com/poiesic/tutorkit/ai/gemini"
	"github.com/poiesic/tutorkit/ai/mistral"
	"github.com/poiesic/tutorkit/ai/openai"
	"github.com/poiesic/tutorkit/quiz"
	"github.com/poiesic/tutorkit/reembed"
	"github.com/poiesic/tutorkit/scoring"
)

func main() {
	app := &cli.App{
		Name:  "tutorkit",
		Usage: "Course material Q&A and answer scoring toolkit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load credentials from this dotenv file (defaults to .env if present)",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest course documents into a collection",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection to ingest into",
						Required: true,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Ask a question against a collection's course materials",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection to retrieve context from",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Generation provider (gemini, mistral)",
						Value: gemini.ProviderName,
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Generation model (provider default if empty)",
					},
				),
			},
			{
				Name:   "score",
				Usage:  "Score a student answer against a reference answer",
				Action: scoreCommand,
				Flags: append(embeddingFlags(),
					&cli.StringFlag{
						Name:     "answer",
						Aliases:  []string{"a"},
						Usage:    "Student answer text",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "reference",
						Aliases:  []string{"r"},
						Usage:    "Reference answer text",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "question",
						Usage: "Question text, used for LLM feedback",
					},
					&cli.Float64Flag{
						Name:  "max-points",
						Usage: "Maximum points for the question",
						Value: 1.0,
					},
					&cli.StringFlag{
						Name:  "feedback-provider",
						Usage: "Provider for LLM feedback on weak answers (disabled if empty)",
					},
				),
			},
			{
				Name:   "quiz",
				Usage:  "Generate a quiz from a topic or from a collection's materials",
				Action: quizCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:     "topic",
						Usage:    "Quiz topic",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "collection",
						Aliases: []string{"c"},
						Usage:   "Draw quiz material from this collection (topic-only if empty)",
					},
					&cli.IntFlag{
						Name:    "questions",
						Aliases: []string{"n"},
						Usage:   "Number of questions",
						Value:   5,
					},
					&cli.StringFlag{
						Name:  "difficulty",
						Usage: "Quiz difficulty (easy, medium, hard)",
						Value: quiz.DifficultyMedium,
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Generation provider (gemini, mistral)",
						Value: gemini.ProviderName,
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Generation model (provider default if empty)",
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all records of a collection with a new embedding model",
				Action: reembedCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection to reembed",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:   "models",
				Usage:  "List generation providers, their availability and models",
				Action: modelsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlags() []cli.Flag {
	return append(embeddingFlags(),
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
	)
}

func embeddingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "all-minilm",
		},
	}
}

// buildAIConfig assembles the AI configuration from flags and environment.
// Generation credentials come from the environment only, so they never show
// up in shell history.
func buildAIConfig(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeminiKey(os.Getenv("GEMINI_API_KEY")),
		ai.WithMistralKey(os.Getenv("MISTRAL_API_KEY")),
	)
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		ai.WithGeminiModel(model)(config)
	}
	if model := os.Getenv("MISTRAL_MODEL"); model != "" {
		ai.WithMistralModel(model)(config)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func openAssistant(c *cli.Context) (*tutorkit.Assistant, error) {
	config, err := buildAIConfig(c)
	if err != nil {
		return nil, err
	}

	assistant, err := tutorkit.NewAssistant(c.String("db"), tutorkit.WithAIConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return assistant, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file to ingest is required")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	pipeline, err := assistant.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	collection := c.String("collection")
	total := 0
	for _, path := range c.Args().Slice() {
		count, err := pipeline.IngestFile(ctx, collection, path)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		fmt.Printf("%s: %d chunks\n", path, count)
		total += count
	}

	fmt.Printf("Ingested %d chunks into %q\n", total, collection)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	response, err := assistant.Ask(context.Background(), c.String("collection"), question,
		c.String("provider"), c.String("model"))
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	if response.GenerationErr != "" {
		return fmt.Errorf("generation failed: %s", response.GenerationErr)
	}

	fmt.Println(response.Answer)
	if len(response.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, source := range response.Sources {
			fmt.Printf("  - %s\n", source)
		}
	}
	return nil
}

func scoreCommand(c *cli.Context) error {
	config, err := buildAIConfig(c)
	if err != nil {
		return err
	}

	embedder, err := openai.NewEmbedder(config)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	registry, err := ai.NewRegistry(config,
		ai.WithProviderFactory(gemini.ProviderName, gemini.Factory),
		ai.WithProviderFactory(mistral.ProviderName, mistral.Factory),
	)
	if err != nil {
		return fmt.Errorf("failed to create provider registry: %w", err)
	}

	scorer, err := scoring.NewHybridScorer(embedder, scoring.WithRegistry(registry))
	if err != nil {
		return fmt.Errorf("failed to create scorer: %w", err)
	}

	opts := []scoring.ScoreOption{
		scoring.WithMaxPoints(c.Float64("max-points")),
	}
	if question := c.String("question"); question != "" {
		opts = append(opts, scoring.WithQuestion(question))
	}
	if provider := c.String("feedback-provider"); provider != "" {
		opts = append(opts, scoring.WithFeedbackProvider(provider, ""))
	}

	breakdown, err := scorer.Score(context.Background(), c.String("answer"), c.String("reference"), opts...)
	if err != nil {
		return fmt.Errorf("failed to score answer: %w", err)
	}

	return printJSON(breakdown)
}

func quizCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	generator, err := assistant.NewQuizGenerator(
		quiz.WithProvider(c.String("provider"), c.String("model")),
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz generator: %w", err)
	}

	ctx := context.Background()
	genOpts := []quiz.GenOption{
		quiz.WithNumQuestions(c.Int("questions")),
		quiz.WithDifficulty(c.String("difficulty")),
	}

	if collection := c.String("collection"); collection != "" {
		result, err := generator.FromCollection(ctx, collection, c.String("topic"), genOpts...)
		if err != nil {
			return fmt.Errorf("failed to generate quiz: %w", err)
		}
		return printJSON(result)
	}

	questions, err := generator.FromTopic(ctx, c.String("topic"), genOpts...)
	if err != nil {
		return fmt.Errorf("failed to generate quiz: %w", err)
	}
	return printJSON(questions)
}

func reembedCommand(c *cli.Context) error {
	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	reembedder, err := assistant.NewReembedder(reembedConfig, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reembedder: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Collection: %s\n", c.String("collection"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(context.Background(), c.String("collection")); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func modelsCommand(c *cli.Context) error {
	config := ai.NewConfig(
		ai.WithGeminiKey(os.Getenv("GEMINI_API_KEY")),
		ai.WithMistralKey(os.Getenv("MISTRAL_API_KEY")),
	)

	registry, err := ai.NewRegistry(config,
		ai.WithProviderFactory(gemini.ProviderName, gemini.Factory),
		ai.WithProviderFactory(mistral.ProviderName, mistral.Factory),
	)
	if err != nil {
		return fmt.Errorf("failed to create provider registry: %w", err)
	}

	availability := registry.Available()
	models := registry.AllModels()
	for _, name := range registry.Names() {
		status := "unavailable (no credential)"
		if availability[name] {
			status = "available"
		}
		fmt.Printf("%s: %s\n", name, status)
		for _, model := range models[name] {
			fmt.Printf("  - %s\n", model)
		}
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func setup(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	return loadEnv(c)
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

// loadEnv loads credentials from a dotenv file. An explicit --env-file must
// exist; the default .env is optional.
func loadEnv(c *cli.Context) error {
	if envFile := c.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		return nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return nil
}
