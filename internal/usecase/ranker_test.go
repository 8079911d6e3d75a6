package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PredictPulse/internal/domain/models"
	"PredictPulse/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

type stubSemantic struct {
	tickers []string
	err     error
}

func (s *stubSemantic) Search(ctx context.Context, query string, topK int) ([]string, error) {
	return s.tickers, s.err
}

type stubSource struct {
	events []models.Event
	err    error
}

func (s *stubSource) Fetch(ctx context.Context) ([]models.Event, error) {
	return s.events, s.err
}

func activeEvent(ticker, title string, liq float64) models.Event {
	return models.Event{
		Ticker: ticker,
		Title:  title,
		Markets: []models.Market{
			{Ticker: ticker + "-m", Status: models.MarketStatusActive, LiquidityRaw: models.Amount(liq), VolumeRaw: 10},
		},
	}
}

func loadedCatalog(t *testing.T, events ...models.Event) *CatalogHolder {
	t.Helper()
	h := NewCatalogHolder(&stubSource{events: events}, testLogger(t), nil)
	require.NoError(t, h.Reload(context.Background()))
	return h
}

func newTestRanker(t *testing.T, catalog *CatalogHolder, sem *stubSemantic) *Ranker {
	t.Helper()
	return NewRanker(catalog, sem, nil, nil, testLogger(t), RankerConfig{
		SemanticTimeout: time.Second,
		DefaultTopK:     100,
		FallbackSize:    150,
	})
}

func TestRank_MergesSemanticAndKeyword(t *testing.T) {
	catalog := loadedCatalog(t,
		activeEvent("BTC", "Bitcoin above 100k", 500),
		activeEvent("ETH", "Ethereum ETF approval", 300),
		activeEvent("FED", "Fed rate decision", 100),
	)
	r := newTestRanker(t, catalog, &stubSemantic{tickers: []string{"FED"}})

	res, err := r.Rank(context.Background(), "bitcoin", 0)
	require.NoError(t, err)
	assert.True(t, res.SemanticUsed)
	assert.Equal(t, 1, res.KeywordCount)
	assert.False(t, res.FallbackUsed)

	tickers := make([]string, 0, len(res.Events))
	for _, re := range res.Events {
		tickers = append(tickers, re.Event.Ticker)
	}
	assert.ElementsMatch(t, []string{"BTC", "FED"}, tickers)
	assert.NotEmpty(t, res.QueryID)
}

func TestRank_SemanticFailureDegrades(t *testing.T) {
	catalog := loadedCatalog(t, activeEvent("BTC", "Bitcoin above 100k", 500))
	r := newTestRanker(t, catalog, &stubSemantic{err: errors.New("backend down")})

	res, err := r.Rank(context.Background(), "bitcoin", 0)
	require.NoError(t, err, "a dead semantic backend must not fail the pass")
	assert.False(t, res.SemanticUsed)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "BTC", res.Events[0].Event.Ticker)
}

func TestRank_EmptyUnionUsesFallbackPool(t *testing.T) {
	catalog := loadedCatalog(t,
		activeEvent("A", "alpha", 10),
		activeEvent("B", "beta", 20),
		models.Event{Ticker: "DEAD", Title: "no markets here"},
	)
	r := newTestRanker(t, catalog, &stubSemantic{})

	// Query tokens all <= 3 chars: keyword retrieval finds nothing.
	res, err := r.Rank(context.Background(), "x y z", 0)
	require.NoError(t, err)
	assert.True(t, res.FallbackUsed)
	require.Len(t, res.Events, 2, "fallback pool holds only scorable events")
}

func TestRank_ScoresAreSetRelative(t *testing.T) {
	catalog := loadedCatalog(t,
		activeEvent("BIG", "market one", 1000),
		activeEvent("SMALL", "market two", 10),
	)
	r := newTestRanker(t, catalog, &stubSemantic{tickers: []string{"BIG", "SMALL"}})

	res, err := r.Rank(context.Background(), "market", 0)
	require.NoError(t, err)
	require.Len(t, res.Events, 2)
	assert.Equal(t, "BIG", res.Events[0].Event.Ticker)
	assert.Greater(t, res.Events[0].CompositeScore, res.Events[1].CompositeScore)
}

func TestRank_EmptyCatalog(t *testing.T) {
	h := NewCatalogHolder(&stubSource{}, testLogger(t), nil)
	r := newTestRanker(t, h, &stubSemantic{tickers: []string{"X"}})

	res, err := r.Rank(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, res.Events)
}
