package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PredictPulse/internal/domain/models"
)

func liquidityEvent(ticker string, liq float64) models.Event {
	return models.Event{
		Ticker: ticker,
		Title:  ticker,
		Markets: []models.Market{
			{Ticker: ticker + "-m", Status: models.MarketStatusActive, LiquidityRaw: models.Amount(liq)},
		},
	}
}

func TestView_SortByLiquidity(t *testing.T) {
	events := []models.Event{
		liquidityEvent("low", 10),
		liquidityEvent("high", 50),
		liquidityEvent("mid", 30),
	}
	cache := BuildStatsCache(events)
	out := View(events, cache, nil, "", SortLiquidity)
	require.Len(t, out, 3)
	assert.Equal(t, "high", out[0].Ticker)
	assert.Equal(t, "mid", out[1].Ticker)
	assert.Equal(t, "low", out[2].Ticker)
}

func TestView_ExcludesEventsWithoutRepresentative(t *testing.T) {
	events := []models.Event{
		liquidityEvent("ok", 10),
		{Ticker: "bare"}, // no markets, no representative
	}
	cache := BuildStatsCache(events)
	out := View(events, cache, nil, "", SortLiquidity)
	require.Len(t, out, 1)
	assert.Equal(t, "ok", out[0].Ticker)
}

func TestView_CloseTimeSoonestFirstMissingLast(t *testing.T) {
	now := time.Now()
	mk := func(ticker, closeAt string) models.Event {
		return models.Event{Ticker: ticker, Markets: []models.Market{
			{Ticker: ticker + "-m", Status: models.MarketStatusActive, CloseTimeRaw: closeAt},
		}}
	}
	events := []models.Event{
		mk("later", now.Add(48*time.Hour).Format(time.RFC3339)),
		mk("soon", now.Add(2*time.Hour).Format(time.RFC3339)),
		mk("broken", "not-a-timestamp"),
	}
	cache := BuildStatsCache(events)
	out := View(events, cache, nil, "", SortCloseTime)
	require.Len(t, out, 3)
	assert.Equal(t, "soon", out[0].Ticker)
	assert.Equal(t, "later", out[1].Ticker)
	assert.Equal(t, "broken", out[2].Ticker, "unparsable close time sorts last")
}

func TestView_ProbabilityDescending(t *testing.T) {
	mk := func(ticker string, yesBid float64) models.Event {
		return models.Event{Ticker: ticker, Markets: []models.Market{
			{Ticker: ticker + "-m", Status: models.MarketStatusActive, YesBidRaw: models.Amount(yesBid)},
		}}
	}
	events := []models.Event{mk("low", 0.2), mk("high", 0.9)}
	cache := BuildStatsCache(events)
	out := View(events, cache, nil, "", SortProbability)
	assert.Equal(t, "high", out[0].Ticker)
}

func TestView_UnknownSortKeyFallsBackToLiquidity(t *testing.T) {
	assert.Equal(t, SortLiquidity, ParseSortKey("bogus"))
	assert.Equal(t, SortLiquidity, ParseSortKey(""))
	assert.Equal(t, SortCloseTime, ParseSortKey("close_time"))
}

func TestView_FilterUsesMatcher(t *testing.T) {
	events := []models.Event{
		{Ticker: "BTC", Title: "Bitcoin above 100k", Markets: []models.Market{{Ticker: "m", Status: models.MarketStatusActive}}},
		{Ticker: "WEA", Title: "NYC high temperature", Markets: []models.Market{{Ticker: "m", Status: models.MarketStatusActive}}},
	}
	cache := BuildStatsCache(events)
	out := View(events, cache, NewWeightedMatcher(), "bitcoin", SortLiquidity)
	require.Len(t, out, 1)
	assert.Equal(t, "BTC", out[0].Ticker)
}

func TestPager_WindowGrowsAndResets(t *testing.T) {
	p := NewPager(30, 30)
	assert.Equal(t, 30, p.Window(100))
	p.Advance(100)
	assert.Equal(t, 60, p.Window(100))
	p.Advance(100)
	p.Advance(100)
	assert.Equal(t, 100, p.Window(100), "threshold caps at sequence length")

	p.SetQuery("bitcoin")
	assert.Equal(t, 30, p.Window(100), "query change resets to the initial window")

	p.SetQuery("bitcoin") // unchanged query keeps the threshold
	p.Advance(100)
	assert.Equal(t, 60, p.Window(100))

	assert.Equal(t, 5, p.Window(5), "window never exceeds the total")
}
