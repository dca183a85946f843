package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulkitj94/socialpulse/internal/domain"
)

func TestClassify(t *testing.T) {
	var gotBody classifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]domain.RawResult{
			{Label: "LABEL_2", Score: 0.98},
			{Label: "LABEL_0", Score: 0.77},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	results, err := client.Classify(context.Background(), []string{"Great quality!", "Delivery was slow."})
	require.NoError(t, err)

	assert.Equal(t, []string{"Great quality!", "Delivery was slow."}, gotBody.Texts)
	require.Len(t, results, 2)
	assert.Equal(t, "LABEL_2", results[0].Label)
	assert.Equal(t, 0.77, results[1].Score)
}

func TestClassifySendsAuthToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.RawResult{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token", 5*time.Second)
	_, err := client.Classify(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClassifyServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	_, err := client.Classify(context.Background(), []string{"text"})
	assert.Error(t, err)
}

func TestClassifyBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	for i := 0; i < breakerConsecutiveFailures; i++ {
		_, err := client.Classify(context.Background(), []string{"text"})
		assert.Error(t, err)
	}

	// Breaker is now open: the next call fails fast without reaching the service.
	before := calls
	_, err := client.Classify(context.Background(), []string{"text"})
	assert.Error(t, err)
	assert.Equal(t, before, calls)
}
