package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pulkitj94/socialpulse/internal/config"
	"github.com/pulkitj94/socialpulse/internal/inference"
	"github.com/pulkitj94/socialpulse/internal/logging"
	"github.com/pulkitj94/socialpulse/internal/sentiment"
	"github.com/pulkitj94/socialpulse/internal/server"
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

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	once := flag.Bool("once", false, "run the scoring pipeline once and exit")
	flag.Parse()

	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "data_dir", cfg.DataDir)

	store := storage.NewFileStore(cfg.DataDir)
	classifier := inference.NewClient(cfg.InferenceURL, cfg.InferenceToken, cfg.InferenceTimeout)
	pipeline := sentiment.NewPipeline(store, store, classifier, store, clock)

	if *once {
		result, err := pipeline.Run(context.Background())
		if err != nil {
			slog.Error("Pipeline run failed", "error", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			slog.Error("Failed to encode result", "error", err)
			os.Exit(1)
		}
		return
	}

	srv := server.NewServer(cfg, pipeline, store)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
