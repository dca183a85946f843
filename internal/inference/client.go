// Package inference adapts a remote sentiment-inference service to the
// domain.Classifier interface. The model itself (an XLM-RoBERTa style
// three-class head) lives behind an HTTP endpoint; its lifecycle and
// hardware acceleration are the service's concern, not ours.
package inference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/pulkitj94/socialpulse/internal/domain"
	"github.com/pulkitj94/socialpulse/internal/metrics"
)

const (
	breakerConsecutiveFailures = 5
	breakerOpenTimeout         = 30 * time.Second
)

type classifyRequest struct {
	Texts []string `json:"texts"`
}

// Client calls the inference service with one blocking batch request
// per pipeline run. A circuit breaker sheds calls while the service is
// failing, so repeated scheduler runs don't pile up on a dead backend.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		httpClient.SetAuthToken(token)
	}

	settings := gobreaker.Settings{
		Name:    "inference",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Inference circuit breaker state change", "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.Set(breakerStateValue(to))
		},
	}

	return &Client{
		http:    httpClient,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Classify sends all texts in one batch and returns a parallel list of
// raw label/score pairs.
func (c *Client) Classify(ctx context.Context, texts []string) ([]domain.RawResult, error) {
	start := time.Now()

	out, err := c.breaker.Execute(func() (any, error) {
		return c.doClassify(ctx, texts)
	})
	if err != nil {
		metrics.InferenceRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.InferenceRequestsTotal.WithLabelValues("success").Inc()
	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	return out.([]domain.RawResult), nil
}

func (c *Client) doClassify(ctx context.Context, texts []string) ([]domain.RawResult, error) {
	var results []domain.RawResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(classifyRequest{Texts: texts}).
		SetResult(&results).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("inference request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("inference service returned %s", resp.Status())
	}
	return results, nil
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
