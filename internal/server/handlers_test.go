package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulkitj94/socialpulse/internal/config"
	"github.com/pulkitj94/socialpulse/internal/domain"
	"github.com/pulkitj94/socialpulse/internal/sentiment"
	"github.com/pulkitj94/socialpulse/internal/storage"
)

type mockRunner struct {
	mu      sync.Mutex
	result  *sentiment.Result
	err     error
	calls   int
	block   chan struct{}
	started chan struct{}
}

func (m *mockRunner) Run(_ context.Context) (*sentiment.Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.started != nil {
		select {
		case m.started <- struct{}{}:
		default:
		}
	}
	if m.block != nil {
		<-m.block
	}
	return m.result, m.err
}

func (m *mockRunner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newTestServer(t *testing.T, runner PipelineRunner) (*Server, *storage.FileStore) {
	t.Helper()
	store := storage.NewFileStore(t.TempDir())
	cfg := &config.Config{Port: "0", DataDir: store.Dir()}
	return NewServer(cfg, runner, store), store
}

func TestHandleRefresh_Success(t *testing.T) {
	runner := &mockRunner{result: &sentiment.Result{
		Comments:  12,
		Summaries: []domain.PlatformSummary{{Platform: "Instagram", HealthScore: 75.0}},
	}}
	srv, _ := newTestServer(t, runner)

	req := httptest.NewRequest(http.MethodPost, "/api/sentiment/refresh", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleRefresh(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"comments":12`)
	assert.Contains(t, rec.Body.String(), `"platforms":1`)
	assert.Equal(t, 1, runner.callCount())
}

func TestHandleRefresh_MissingInput(t *testing.T) {
	runner := &mockRunner{err: fmt.Errorf("comments: %w", domain.ErrMissingInput)}
	srv, _ := newTestServer(t, runner)

	req := httptest.NewRequest(http.MethodPost, "/api/sentiment/refresh", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleRefresh(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRefresh_EmptyInput(t *testing.T) {
	runner := &mockRunner{err: fmt.Errorf("comments: %w", domain.ErrEmptyInput)}
	srv, _ := newTestServer(t, runner)

	req := httptest.NewRequest(http.MethodPost, "/api/sentiment/refresh", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleRefresh(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleRefresh_InternalError(t *testing.T) {
	runner := &mockRunner{err: errors.New("inference exploded")}
	srv, _ := newTestServer(t, runner)

	req := httptest.NewRequest(http.MethodPost, "/api/sentiment/refresh", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleRefresh(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "inference exploded") // internals stay internal
}

func TestHandleRefresh_ConcurrentTriggersShareOneRun(t *testing.T) {
	runner := &mockRunner{
		result:  &sentiment.Result{},
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	srv, _ := newTestServer(t, runner)

	const clients = 5
	var wg sync.WaitGroup
	codes := make([]int, clients)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/sentiment/refresh", nil)
			rec := httptest.NewRecorder()
			c := srv.echo.NewContext(req, rec)
			_ = srv.handleRefresh(c)
			codes[i] = rec.Code
		}(i)
	}

	// Wait until the first caller is inside Run, give the rest a moment
	// to join the flight, then release everyone.
	<-runner.started
	time.Sleep(100 * time.Millisecond)
	close(runner.block)
	wg.Wait()

	assert.Equal(t, 1, runner.callCount())
	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}

func TestHandleRefresh_RateLimited(t *testing.T) {
	runner := &mockRunner{result: &sentiment.Result{}}
	srv, _ := newTestServer(t, runner)

	// Routed requests pass through the limiter; the burst is spent
	// first, then the same client IP is denied.
	codes := make([]int, 0, refreshBurst+1)
	for i := 0; i < refreshBurst+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/sentiment/refresh", nil)
		rec := httptest.NewRecorder()
		srv.echo.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	for _, code := range codes[:refreshBurst] {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, http.StatusTooManyRequests, codes[refreshBurst])
	assert.Equal(t, refreshBurst, runner.callCount())
}

func TestHandleSummary(t *testing.T) {
	srv, store := newTestServer(t, &mockRunner{})
	require.NoError(t, store.WriteSummary([]domain.PlatformSummary{
		{Platform: "Twitter", HealthScore: 42.5, TotalComments: 4},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/sentiment/summary", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleSummary(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"platform":"Twitter"`)
	assert.Contains(t, rec.Body.String(), `"health_score":42.5`)
}

func TestHandleSummary_NotWrittenYet(t *testing.T) {
	srv, _ := newTestServer(t, &mockRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/sentiment/summary", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleSummary(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHistory(t *testing.T) {
	srv, store := newTestServer(t, &mockRunner{})
	require.NoError(t, store.AppendHistory("2024-01-01 10:00", []domain.PlatformSummary{
		{Platform: "Instagram", HealthScore: 75.0},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/sentiment/history", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleHistory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"timestamp":"2024-01-01 10:00"`)
}

func TestHandleHistory_EmptyTrend(t *testing.T) {
	srv, _ := newTestServer(t, &mockRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/sentiment/history", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleHistory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleComments_NotWrittenYet(t *testing.T) {
	srv, _ := newTestServer(t, &mockRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/sentiment/comments", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleComments(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleLiveness(t *testing.T) {
	srv, _ := newTestServer(t, &mockRunner{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleLiveness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleReadiness(t *testing.T) {
	srv, _ := newTestServer(t, &mockRunner{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleReadiness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleReadiness_MissingDataDir(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "does-not-exist"))
	cfg := &config.Config{Port: "0", DataDir: store.Dir()}
	srv := NewServer(cfg, &mockRunner{}, store)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleReadiness(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleVersion(t *testing.T) {
	srv, _ := newTestServer(t, &mockRunner{})

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleVersion(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"go_version"`)
}
