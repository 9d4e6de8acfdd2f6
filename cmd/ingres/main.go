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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/poiesic/ingres"
	"github.com/poiesic/ingres/ai"
	"github.com/poiesic/ingres/config"
	"github.com/poiesic/ingres/resolve"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ingres",
		Usage: "Answer questions about regional groundwater assessments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (default ./ingres.yaml, then ~/.config/ingres/config.yaml)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "Override the corpus CSV path",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Override the embedding service host URL",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "build-index",
				Usage:  "Embed the corpus and write the semantic index",
				Action: buildIndexCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Rebuild even when index files exist",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Resolve a query and print the matching records",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntSliceFlag{
						Name:    "year",
						Aliases: []string{"y"},
						Usage:   "Keep only these assessment years (repeatable; default: years in the query)",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print each resolution stage to stderr",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a question with a summary report in the question's language",
				ArgsUsage: "<question>",
				Action:    askCommand,
			},
			{
				Name:   "tui",
				Usage:  "Interactive dashboard",
				Action: tuiCommand,
			},
			{
				Name:  "feedback",
				Usage: "Record and review user feedback",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Store a feedback comment",
						ArgsUsage: "<text>",
						Action:    feedbackAddCommand,
					},
					{
						Name:   "list",
						Usage:  "Show recent feedback, newest first",
						Action: feedbackListCommand,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:    "limit",
								Aliases: []string{"n"},
								Usage:   "Number of entries to show",
								Value:   10,
							},
						},
					},
				},
			},
		},
	}
}

func setup(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies global flag overrides.
func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	var (
		cfg  *config.AppConfig
		path string
		err  error
	)
	if path = c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, path, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.Debug("config loaded", "path", path)

	if c.IsSet("corpus") {
		cfg.Data.Corpus = c.String("corpus")
	}
	if c.IsSet("embedding-host") {
		cfg.AI.EmbeddingHost = c.String("embedding-host")
	}
	return cfg, nil
}

func engineOptions(cfg *config.AppConfig) []ingres.EngineOption {
	return []ingres.EngineOption{
		ingres.WithAIConfig(cfg.AIConfig()),
		ingres.WithIndexPaths(cfg.Paths()),
		ingres.WithIndexerConfig(cfg.IndexerConfig()),
		ingres.WithPoolSize(cfg.Indexer.PoolSize),
		ingres.WithTopK(cfg.Resolver.TopK),
		ingres.WithProgress(os.Stderr),
		ingres.WithLogger(slog.Default()),
	}
}

func openEngine(ctx context.Context, c *cli.Context, extra ...ingres.EngineOption) (*ingres.Engine, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	engine, err := ingres.Open(ctx, cfg.Data.Corpus, append(engineOptions(cfg), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func commandContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt)
}

func queryArg(c *cli.Context, what string) (string, error) {
	q := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if q == "" {
		return "", fmt.Errorf("%s is required", what)
	}
	return q, nil
}

func buildIndexCommand(c *cli.Context) error {
	ctx, cancel := commandContext(c)
	defer cancel()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Corpus: %s\n", cfg.Data.Corpus)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", cfg.AI.EmbeddingHost)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", cfg.AI.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	opts := append(engineOptions(cfg), ingres.WithForceRebuild(c.Bool("force")))
	artifact, built, err := ingres.BuildIndex(ctx, cfg.Data.Corpus, opts...)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	if !built {
		fmt.Printf("Index already present at %s (use --force to rebuild)\n", cfg.Data.Index)
		return nil
	}
	fmt.Printf("Indexed %d records (dimension %d) into %s\n", artifact.Header.Count, artifact.Header.Dimension, cfg.Data.Index)
	return nil
}

func searchCommand(c *cli.Context) error {
	query, err := queryArg(c, "query")
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	years := c.IntSlice("year")
	if len(years) == 0 {
		years = resolve.ExtractYears(query)
	}

	var monitor resolve.Monitor
	if c.Bool("explain") {
		monitor = newExplainMonitor(os.Stderr)
	}
	result, err := engine.SearchWithMonitor(ctx, query, years, monitor)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Print(renderResult(result))
	return nil
}

func askCommand(c *cli.Context) error {
	question, err := queryArg(c, "question")
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	answer, err := engine.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if answer.Translation.Status == ai.TranslationFailed {
		fmt.Fprintf(os.Stderr, "Translation to %s failed (%v); showing English.\n", answer.Language.Name(), answer.Translation.Err)
	}
	fmt.Print(renderAnswer(answer, 60))
	return nil
}

func tuiCommand(c *cli.Context) error {
	ctx, cancel := commandContext(c)
	defer cancel()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := ingres.Open(ctx, cfg.Data.Corpus, append(engineOptions(cfg), ingres.WithFeedbackPath(cfg.Data.FeedbackDB))...)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	status := fmt.Sprintf("%d records, %d states, %d districts", engine.Corpus().Len(), len(engine.Corpus().States()), len(engine.Corpus().Districts()))
	program := tea.NewProgram(newDashboard(ctx, engine, status), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
