package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/pulkitj94/socialpulse/internal/config"
	"github.com/pulkitj94/socialpulse/internal/domain"
	"github.com/pulkitj94/socialpulse/internal/generator"
	"github.com/pulkitj94/socialpulse/internal/logging"
	"github.com/pulkitj94/socialpulse/internal/simulator"
	"github.com/pulkitj94/socialpulse/internal/storage"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupGenerator(cfg *config.Config) domain.CommentGenerator {
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("No OpenAI API key configured, using static fallback comments")
		return generator.Static{}
	}
	gen, err := generator.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		slog.Error("Failed to create comment generator", "error", err)
		os.Exit(1)
	}
	return gen
}

func parseScenario(s string) domain.Scenario {
	switch domain.Scenario(s) {
	case domain.ScenarioNormal, domain.ScenarioCrisis, domain.ScenarioViral:
		return domain.Scenario(s)
	default:
		log.Fatalf("Unknown scenario %q (want normal, crisis, or viral)", s)
		return domain.ScenarioNormal
	}
}

func main() {
	once := flag.Bool("once", false, "run a single simulation cycle and exit")
	scenario := flag.String("scenario", string(domain.ScenarioNormal), "scenario to simulate: normal, crisis, or viral")
	flag.Parse()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	sc := parseScenario(*scenario)

	store := storage.NewFileStore(cfg.DataDir)
	clock := clockwork.NewRealClock()
	rng := rand.New(rand.NewSource(clock.Now().UnixNano()))
	sim := simulator.New(store, setupGenerator(cfg), clock, rng, cfg.RefreshURL)

	if *once {
		if err := sim.RunCycle(context.Background(), sc); err != nil {
			slog.Error("Simulation cycle failed", "error", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("Simulator starting", "scenario", sc, "schedule", cfg.SimulatorSchedule, "data_dir", cfg.DataDir)

	c := cron.New()
	if _, err := c.AddFunc(cfg.SimulatorSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := sim.RunCycle(ctx, sc); err != nil {
			slog.Error("Simulation cycle failed", "error", err)
		}
	}); err != nil {
		slog.Error("Invalid simulator schedule", "schedule", cfg.SimulatorSchedule, "error", err)
		os.Exit(1)
	}
	c.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutdown signal received, waiting for running cycle...")
	<-c.Stop().Done()
}
