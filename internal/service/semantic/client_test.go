package semantic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PredictPulse/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func TestClient_SearchDecodesBackendResults(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"event_ticker":"EV-A"},{"event_ticker":"EV-B"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, TopK: 100, Timeout: time.Second}, testLogger(t))

	tickers, err := c.Search(context.Background(), "bitcoin outlook", 25)
	require.NoError(t, err)
	assert.Equal(t, []string{"EV-A", "EV-B"}, tickers)

	assert.Equal(t, "bitcoin outlook", gotBody["query"])
	assert.Equal(t, float64(25), gotBody["topK"])
}

func TestClient_SearchMemoizesPerQueryAndTopK(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"event_ticker":"EV-A"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, TopK: 100, Timeout: time.Second, CacheTTL: time.Minute}, testLogger(t))

	for i := 0; i < 3; i++ {
		tickers, err := c.Search(context.Background(), "elections", 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"EV-A"}, tickers)
	}
	assert.EqualValues(t, 1, hits, "repeated identical queries hit the backend once")

	_, err := c.Search(context.Background(), "elections", 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits, "a different topK is a different cache key")
}

func TestClient_SearchErrorsWhenUnconfigured(t *testing.T) {
	c := NewClient(Config{}, testLogger(t))
	_, err := c.Search(context.Background(), "anything", 10)
	assert.Error(t, err)
}
