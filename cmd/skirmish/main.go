// Package main is the entry point for Skirmish.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/skirmish/internal/config"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/logging"
	"github.com/samdwyer/skirmish/internal/storage"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

func main() {
	var (
		configPath string
		auto       bool
		encounter  string
		seed       int64
	)
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.BoolVar(&auto, "auto", false, "play the battle headless and print the log")
	flag.StringVar(&encounter, "encounter", "", "encounter ID (default: weighted random)")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 = config or time)")
	flag.Parse()

	// Load .env file for local development
	// This makes HONEYCOMB_SKIRMISH_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}
	if auto {
		cfg.Auto = true
	}
	if encounter != "" {
		cfg.Encounter = encounter
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// The terminal belongs to tcell in interactive mode
	var console io.Writer
	if cfg.Auto {
		console = os.Stderr
	}
	var logFile io.Writer
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logFile = f
	}
	logger := logging.New(cfg.SlogLevel(), console, logFile)

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Warn("telemetry setup failed, running without observability", "error", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("shutting down telemetry", "error", err)
			}
		}()
	}

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	db, err := storage.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer storage.Close(db)
	repo := storage.NewSQLiteRepository(db)

	g, err := game.New(cfg, catalog, repo, logger, nil)
	if err != nil {
		return fmt.Errorf("initializing game: %w", err)
	}

	if !cfg.Auto {
		return g.Play(ctx)
	}

	outcome, err := g.RunAuto(ctx)
	for _, line := range g.Log() {
		fmt.Println(line)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s vs %s in %d turns (seed %d)\n", outcome.Result, g.Encounter().Name, outcome.Turns, g.Seed())
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", telemetry.HoneycombEndpoint)

	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here from the raw key
	apiKey := os.Getenv("HONEYCOMB_SKIRMISH_API_KEY")
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			telemetry.HoneycombHeaders(apiKey, os.Getenv("HONEYCOMB_SKIRMISH_DATASET")))
	}
}
