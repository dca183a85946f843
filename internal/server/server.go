// Package server exposes the dashboard API: current platform summaries,
// the health score history, the enriched comment table, and the refresh
// trigger that runs the pipeline.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/pulkitj94/socialpulse/internal/config"
	"github.com/pulkitj94/socialpulse/internal/sentiment"
	"github.com/pulkitj94/socialpulse/internal/storage"
)

// PipelineRunner runs one full pipeline batch.
type PipelineRunner interface {
	Run(ctx context.Context) (*sentiment.Result, error)
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	runner    PipelineRunner
	store     *storage.FileStore
	startTime time.Time

	// refreshGroup collapses concurrent refresh triggers into a single
	// pipeline run; the check-then-append on the history log is not
	// safe under overlapping runs.
	refreshGroup singleflight.Group
}

func NewServer(cfg *config.Config, runner PipelineRunner, store *storage.FileStore) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:      e,
		config:    cfg,
		runner:    runner,
		store:     store,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
