package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PredictPulse/internal/domain/models"
)

func candidate(ticker string, m models.EventMetrics) models.RankedEvent {
	return models.RankedEvent{Event: models.Event{Ticker: ticker}, Metrics: m}
}

func TestScoreCandidates_SortedAndBounded(t *testing.T) {
	in := []models.RankedEvent{
		candidate("a", models.EventMetrics{TotalLiquidity: 10, TotalVolume: 5, ActiveMarketCount: 1}),
		candidate("b", models.EventMetrics{TotalLiquidity: 1000, TotalVolume: 800, VolumeVelocity: 0.9, ActiveMarketCount: 4}),
		candidate("c", models.EventMetrics{TotalLiquidity: 300, TotalVolume: 40, VolumeVelocity: 0.1, ActiveMarketCount: 2}),
	}
	out := ScoreCandidates(in)
	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].CompositeScore, out[i].CompositeScore, "output must be non-increasing")
	}
	for _, r := range out {
		assert.GreaterOrEqual(t, r.CompositeScore, 0.0)
		assert.LessOrEqual(t, r.CompositeScore, 100.0)
	}
	assert.Equal(t, "b", out[0].Event.Ticker)
}

func TestScoreCandidates_AllZeroLiquidity(t *testing.T) {
	in := []models.RankedEvent{
		candidate("a", models.EventMetrics{TotalVolume: 50, ActiveMarketCount: 1}),
		candidate("b", models.EventMetrics{TotalVolume: 10, ActiveMarketCount: 1}),
	}
	out := ScoreCandidates(in)
	// Liquidity max is 0: the term contributes exactly 0 for everyone,
	// no division-by-zero artifact.
	for _, r := range out {
		withLiq := weightLiquidity * 1.0 * 100
		assert.Less(t, r.CompositeScore, withLiq+weightVolume*100+weightMarketCount*100)
	}
	assert.Equal(t, "a", out[0].Event.Ticker)
}

func TestScoreCandidates_MarketCountCapSaturates(t *testing.T) {
	in := []models.RankedEvent{
		candidate("ten", models.EventMetrics{ActiveMarketCount: 10}),
		candidate("fifty", models.EventMetrics{ActiveMarketCount: 50}),
	}
	out := ScoreCandidates(in)
	// Both saturate the constant cap; the only other nonzero term is the
	// spread-quality bonus every zero-spread set gets. Scores tie and
	// the original order is preserved.
	assert.InDelta(t, out[0].CompositeScore, out[1].CompositeScore, 1e-9)
	assert.Equal(t, "ten", out[0].Event.Ticker)
	assert.InDelta(t, (weightMarketCount+weightSpreadQuality)*100, out[0].CompositeScore, 1e-9)
}

func TestScoreCandidates_StableForTies(t *testing.T) {
	in := []models.RankedEvent{
		candidate("first", models.EventMetrics{TotalLiquidity: 5, ActiveMarketCount: 1}),
		candidate("second", models.EventMetrics{TotalLiquidity: 5, ActiveMarketCount: 1}),
		candidate("third", models.EventMetrics{TotalLiquidity: 5, ActiveMarketCount: 1}),
	}
	out := ScoreCandidates(in)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{out[0].Event.Ticker, out[1].Event.Ticker, out[2].Event.Ticker})
}

func TestScoreCandidates_Empty(t *testing.T) {
	assert.Nil(t, ScoreCandidates(nil))
}

// End-to-end scenario: B has no active markets and never enters scoring;
// A's normalized liquidity is 1.0 and C's is 0.5.
func TestScoreCandidates_RelativeNormalizationScenario(t *testing.T) {
	a := models.Event{Ticker: "A", Markets: []models.Market{
		{Ticker: "a1", Status: models.MarketStatusActive, LiquidityRaw: 100, VolumeRaw: 50},
	}}
	b := models.Event{Ticker: "B"}
	c := models.Event{Ticker: "C", Markets: []models.Market{
		{Ticker: "c1", Status: models.MarketStatusActive, LiquidityRaw: 30, VolumeRaw: 30, Volume24hRaw: 25},
		{Ticker: "c2", Status: models.MarketStatusActive, LiquidityRaw: 20, VolumeRaw: 20},
	}}

	var in []models.RankedEvent
	for _, ev := range []models.Event{a, b, c} {
		if m, ok := ExtractMetrics(&ev); ok {
			in = append(in, models.RankedEvent{Event: ev, Metrics: m})
		}
	}
	require.Len(t, in, 2, "B must be excluded entirely")

	out := ScoreCandidates(in)
	byTicker := map[string]models.RankedEvent{}
	for _, r := range out {
		byTicker[r.Event.Ticker] = r
	}
	assert.Equal(t, 100.0, byTicker["A"].Metrics.TotalLiquidity)
	assert.Equal(t, 50.0, byTicker["C"].Metrics.TotalLiquidity)

	// C leads on velocity (0.5 vs 0) and market count but A holds the
	// liquidity and volume maxima. No market has a positive spread, so
	// the spread-quality term is a full 1.0 for both.
	aScore := byTicker["A"].CompositeScore
	expectA := (weightLiquidity*1.0 + weightVolume*1.0 + weightSpreadQuality*1.0 + weightMarketCount*0.1) * 100
	assert.InDelta(t, expectA, aScore, 1e-9)
}
