package ranking

import (
	"PredictPulse/internal/domain/models"
)

// ExtractMetrics reduces an event's active markets into the per-event
// aggregates used by the scorer. The second return is false when the
// event has no active markets; such events take no further part in
// scoring. Pure function of the event.
func ExtractMetrics(ev *models.Event) (models.EventMetrics, bool) {
	active := ev.ActiveMarkets()
	if len(active) == 0 {
		return models.EventMetrics{}, false
	}

	var totalLiquidity, totalVolume, volume24h float64
	var spreadSum float64
	spreadCount := 0

	for i := range active {
		m := &active[i]
		totalLiquidity += m.Liquidity()
		totalVolume += m.Volume()
		volume24h += m.Volume24h()
		// Only positive spreads enter the average; zero and negative
		// differences are feed noise and would bias the mean if clamped.
		if s := m.Spread(); s > 0 {
			spreadSum += s
			spreadCount++
		}
	}

	velocity := 0.0
	if totalVolume > 0 {
		velocity = volume24h / totalVolume
	}
	avgSpread := 0.0
	if spreadCount > 0 {
		avgSpread = spreadSum / float64(spreadCount)
	}

	return models.EventMetrics{
		TotalLiquidity:    totalLiquidity,
		TotalVolume:       totalVolume,
		VolumeVelocity:    velocity,
		AverageSpread:     avgSpread,
		ActiveMarketCount: len(active),
	}, true
}
