// Package metrics defines the Prometheus instrumentation for the
// pipeline and its collaborators.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics
var (
	// PipelineRunsTotal tracks pipeline runs by terminal status (success/aborted)
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total pipeline runs by terminal status",
		},
		[]string{"status"},
	)

	// PipelineRunDuration tracks full pipeline run latency in seconds
	PipelineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_run_duration_seconds",
			Help:    "Full pipeline run duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// CommentsProcessedTotal tracks comments classified across all runs
	CommentsProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_processed_total",
			Help: "Total comments classified across all pipeline runs",
		},
	)

	// LanguageDetectedTotal tracks detected language tags
	LanguageDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "language_detected_total",
			Help: "Detected comment languages by tag",
		},
		[]string{"language"},
	)

	// UnrecognizedLabelsTotal tracks classifier labels outside the known vocabulary
	UnrecognizedLabelsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unrecognized_labels_total",
			Help: "Classifier labels outside the known vocabulary, passed through unchanged",
		},
	)

	// HistoryAppendsTotal tracks history log writes by outcome (written/skipped)
	HistoryAppendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_appends_total",
			Help: "History log append attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// Inference collaborator metrics
var (
	// InferenceRequestsTotal tracks sentiment inference calls by status
	InferenceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inference_requests_total",
			Help: "Sentiment inference batch calls by status",
		},
		[]string{"status"},
	)

	// InferenceDuration tracks inference batch call latency in seconds
	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inference_request_duration_seconds",
			Help:    "Sentiment inference batch call duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// CircuitBreakerState tracks the inference breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inference_circuit_breaker_state",
			Help: "Inference circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// Simulator metrics
var (
	// GeneratorFallbacksTotal tracks generative-comment calls that fell back to the fixed list
	GeneratorFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "generator_fallbacks_total",
			Help: "Comment generation calls that fell back to the fixed list",
		},
	)

	// SimulationCyclesTotal tracks simulation cycles by scenario
	SimulationCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulation_cycles_total",
			Help: "Completed simulation cycles by scenario",
		},
		[]string{"scenario"},
	)
)
