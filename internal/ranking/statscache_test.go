package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PredictPulse/internal/domain/models"
)

func TestBuildStatsCache_PicksMaxLiquidityActive(t *testing.T) {
	events := []models.Event{{
		Ticker: "EV",
		Markets: []models.Market{
			{Ticker: "m1", Status: models.MarketStatusActive, LiquidityRaw: 10, VolumeRaw: 1, OpenInterestRaw: 5},
			{Ticker: "m2", Status: models.MarketStatusActive, LiquidityRaw: 90, VolumeRaw: 2, OpenInterestRaw: 5},
			{Ticker: "m3", Status: models.MarketStatusClosed, LiquidityRaw: 500},
		},
	}}
	cache := BuildStatsCache(events)
	e := cache["EV"]
	require.NotNil(t, e.Representative)
	assert.Equal(t, "m2", e.Representative.Ticker)
	assert.Equal(t, 100.0, e.Stats.TotalLiquidity, "stats sum active markets only")
	assert.Equal(t, 10.0, e.Stats.TotalOpenInterest)
	assert.Equal(t, 2, e.Stats.ActiveMarketCount)
}

func TestBuildStatsCache_TieKeepsFirstEncountered(t *testing.T) {
	events := []models.Event{{
		Ticker: "EV",
		Markets: []models.Market{
			{Ticker: "first", Status: models.MarketStatusActive, LiquidityRaw: 50},
			{Ticker: "second", Status: models.MarketStatusActive, LiquidityRaw: 50},
		},
	}}
	cache := BuildStatsCache(events)
	assert.Equal(t, "first", cache["EV"].Representative.Ticker)
}

func TestBuildStatsCache_ClosedOnlyFallsBackToFirstMarket(t *testing.T) {
	events := []models.Event{{
		Ticker: "EV",
		Markets: []models.Market{
			{Ticker: "c1", Status: models.MarketStatusClosed, LiquidityRaw: 5},
			{Ticker: "c2", Status: models.MarketStatusClosed, LiquidityRaw: 500},
		},
	}}
	cache := BuildStatsCache(events)
	e := cache["EV"]
	require.NotNil(t, e.Representative)
	assert.Equal(t, "c1", e.Representative.Ticker, "fallback is the first market regardless of status")
	assert.Equal(t, models.EventStats{}, e.Stats, "stats stay zeroed with no active markets")
}

func TestBuildStatsCache_NoMarkets(t *testing.T) {
	cache := BuildStatsCache([]models.Event{{Ticker: "EV"}})
	e, ok := cache["EV"]
	require.True(t, ok)
	assert.Nil(t, e.Representative)
	assert.False(t, cache.HasRepresentative("EV"))
}

func TestBuildStatsCache_Deterministic(t *testing.T) {
	events := []models.Event{
		{Ticker: "A", Markets: []models.Market{
			{Ticker: "a1", Status: models.MarketStatusActive, LiquidityRaw: 7, VolumeRaw: 3},
			{Ticker: "a2", Status: models.MarketStatusClosed},
		}},
		{Ticker: "B"},
		{Ticker: "C", Markets: []models.Market{
			{Ticker: "c1", Status: models.MarketStatusClosed, LiquidityRaw: 1},
		}},
	}
	first := BuildStatsCache(events)
	second := BuildStatsCache(events)
	require.Equal(t, len(first), len(second))
	for ticker, e1 := range first {
		e2, ok := second[ticker]
		require.True(t, ok)
		assert.Equal(t, e1.Stats, e2.Stats)
		if e1.Representative == nil {
			assert.Nil(t, e2.Representative)
		} else {
			require.NotNil(t, e2.Representative)
			assert.Equal(t, e1.Representative.Ticker, e2.Representative.Ticker)
		}
	}
}
