package server

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pulkitj94/socialpulse/internal/correlation"
	"github.com/pulkitj94/socialpulse/internal/domain"
	"github.com/pulkitj94/socialpulse/internal/sentiment"
	"github.com/pulkitj94/socialpulse/internal/version"
)

func (s *Server) handleRefresh(c echo.Context) error {
	ctx := correlation.WithRunID(c.Request().Context(), correlation.NewRunID())

	result, err, shared := s.refreshGroup.Do("refresh", func() (any, error) {
		return s.runner.Run(ctx)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingInput):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrEmptyInput):
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			slog.ErrorContext(ctx, "Pipeline run failed", "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "pipeline run failed"})
		}
	}

	run := result.(*sentiment.Result)
	return c.JSON(http.StatusOK, map[string]any{
		"status":          "refreshed",
		"shared":          shared,
		"comments":        run.Comments,
		"platforms":       len(run.Summaries),
		"history_skipped": run.HistorySkipped,
	})
}

func (s *Server) handleSummary(c echo.Context) error {
	summaries, err := s.store.ReadSummary()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "no summary written yet"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to read summary"})
	}
	return c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleHistory(c echo.Context) error {
	records, err := s.store.ReadHistory()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No runs yet: an empty trend, not an error.
			return c.JSON(http.StatusOK, []domain.HistoryRecord{})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to read history"})
	}
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Server) handleComments(c echo.Context) error {
	path := s.store.DetailedPath()
	if _, err := os.Stat(path); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no detailed table written yet"})
	}
	return c.File(path)
}

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	info, err := os.Stat(s.store.Dir())
	if err != nil || !info.IsDir() {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":       "unhealthy",
			"failed_check": "data_dir",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}
