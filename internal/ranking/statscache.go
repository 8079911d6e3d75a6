package ranking

import (
	"PredictPulse/internal/domain/models"
)

// StatsEntry holds the representative market chosen for compact views and
// the aggregate display stats for one event. Representative is nil only
// for events with no markets at all.
type StatsEntry struct {
	Representative *models.Market
	Stats          models.EventStats
}

// StatsCache maps event ticker to its cached entry. The cache is a pure
// function of the catalog: owners rebuild it wholesale whenever the
// catalog snapshot changes and readers must not mutate entries in place.
type StatsCache map[string]StatsEntry

// BuildStatsCache computes the representative market and display stats
// for every event. Selection: highest-liquidity active market, first
// encountered wins ties. An event with only closed markets falls back to
// its first market so it still renders somewhere, though the view
// pipeline excludes it from results that require an active representative.
func BuildStatsCache(events []models.Event) StatsCache {
	cache := make(StatsCache, len(events))

	for i := range events {
		ev := &events[i]
		if len(ev.Markets) == 0 {
			cache[ev.Ticker] = StatsEntry{}
			continue
		}

		var rep *models.Market
		var stats models.EventStats
		for j := range ev.Markets {
			m := &ev.Markets[j]
			if !m.IsActive() {
				continue
			}
			if rep == nil || m.Liquidity() > rep.Liquidity() {
				rep = m
			}
			stats.TotalLiquidity += m.Liquidity()
			stats.TotalVolume += m.Volume()
			stats.TotalOpenInterest += m.OpenInterest()
			stats.ActiveMarketCount++
		}
		if rep == nil {
			rep = &ev.Markets[0]
		}
		cache[ev.Ticker] = StatsEntry{Representative: rep, Stats: stats}
	}

	return cache
}

// HasRepresentative reports whether a representative market was cached
// for the ticker. Only events with no markets at all lack one.
func (c StatsCache) HasRepresentative(ticker string) bool {
	e, ok := c[ticker]
	return ok && e.Representative != nil
}
