package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Dashboard data
	s.echo.GET("/api/sentiment/summary", s.handleSummary)
	s.echo.GET("/api/sentiment/history", s.handleHistory)
	s.echo.GET("/api/sentiment/comments", s.handleComments)

	// Refresh trigger (rate limited; the simulator pokes this after each cycle)
	s.echo.POST("/api/sentiment/refresh", s.handleRefresh, refreshRateLimiter())
}
