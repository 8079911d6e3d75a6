package ranking

import (
	"sort"

	"PredictPulse/internal/domain/models"
)

// Composite score weights. They sum to 1.0 and are fixed behavioral
// contracts, as is the constant market-count cap.
const (
	weightLiquidity     = 0.35
	weightVelocity      = 0.25
	weightVolume        = 0.20
	weightSpreadQuality = 0.10
	weightMarketCount   = 0.10

	// Market count normalizes against this constant, not the set max:
	// events with 10+ active markets saturate the term at 1.0.
	marketCountCap = 10
)

// ScoreCandidates computes the query-relative composite score for every
// candidate and returns them sorted descending by score, stable for ties.
// Normalization maxima are taken from the input set itself, so a score is
// only meaningful relative to the candidate set it was computed in; never
// cache scores across queries.
func ScoreCandidates(candidates []models.RankedEvent) []models.RankedEvent {
	if len(candidates) == 0 {
		return nil
	}

	var maxLiq, maxVel, maxVol, maxSpread float64
	for i := range candidates {
		m := &candidates[i].Metrics
		maxLiq = maxOf(maxLiq, m.TotalLiquidity)
		maxVel = maxOf(maxVel, m.VolumeVelocity)
		maxVol = maxOf(maxVol, m.TotalVolume)
		maxSpread = maxOf(maxSpread, m.AverageSpread)
	}

	out := make([]models.RankedEvent, len(candidates))
	copy(out, candidates)
	for i := range out {
		m := &out[i].Metrics
		score := weightLiquidity*normalize(m.TotalLiquidity, maxLiq) +
			weightVelocity*normalize(m.VolumeVelocity, maxVel) +
			weightVolume*normalize(m.TotalVolume, maxVol) +
			weightSpreadQuality*(1-normalize(m.AverageSpread, maxSpread)) +
			weightMarketCount*normalize(float64(m.ActiveMarketCount), marketCountCap)
		out[i].CompositeScore = score * 100
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompositeScore > out[j].CompositeScore
	})
	return out
}

// normalize maps val into [0,1] relative to max. A zero max yields 0 for
// everyone rather than a division-by-zero artifact. Values above max
// (only possible for the constant-capped term) clamp to 1.
func normalize(val, max float64) float64 {
	if max <= 0 {
		return 0
	}
	n := val / max
	if n > 1 {
		return 1
	}
	return n
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
