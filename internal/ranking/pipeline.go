package ranking

import (
	"sort"
	"time"

	"PredictPulse/internal/domain/models"
)

// SortKey selects one of the five ordering strategies. Every strategy
// compares the two events' cached representative markets.
type SortKey string

const (
	SortLiquidity    SortKey = "liquidity"
	SortVolume       SortKey = "volume"
	SortOpenInterest SortKey = "open_interest"
	SortProbability  SortKey = "probability"
	SortCloseTime    SortKey = "close_time"
)

// ParseSortKey maps a request value to a SortKey; unknown values fall
// back to liquidity.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortVolume, SortOpenInterest, SortProbability, SortCloseTime:
		return SortKey(s)
	default:
		return SortLiquidity
	}
}

// View applies the free-text filter and the chosen sort strategy over a
// catalog snapshot. Events without a representative market in the cache
// are excluded unconditionally, independent of the text filter. The
// returned slice holds copies of the events in display order.
func View(events []models.Event, cache StatsCache, m Matcher, query string, key SortKey) []models.Event {
	out := make([]models.Event, 0, len(events))
	for i := range events {
		if !cache.HasRepresentative(events[i].Ticker) {
			continue
		}
		if query != "" && m != nil && !m.Match(&events[i], query) {
			continue
		}
		out = append(out, events[i])
	}

	now := time.Now()
	less := comparatorFor(key, cache, now)
	sort.SliceStable(out, less(out))
	return out
}

// comparatorFor builds the less function for a sort key. close_time
// orders ascending by time remaining; events with a missing or
// unparsable close time sort last so the ordering stays deterministic.
func comparatorFor(key SortKey, cache StatsCache, now time.Time) func([]models.Event) func(i, j int) bool {
	rep := func(evs []models.Event, i int) *models.Market {
		return cache[evs[i].Ticker].Representative
	}
	switch key {
	case SortVolume:
		return func(evs []models.Event) func(i, j int) bool {
			return func(i, j int) bool { return rep(evs, i).Volume() > rep(evs, j).Volume() }
		}
	case SortOpenInterest:
		return func(evs []models.Event) func(i, j int) bool {
			return func(i, j int) bool { return rep(evs, i).OpenInterest() > rep(evs, j).OpenInterest() }
		}
	case SortProbability:
		return func(evs []models.Event) func(i, j int) bool {
			return func(i, j int) bool { return rep(evs, i).YesBid()*100 > rep(evs, j).YesBid()*100 }
		}
	case SortCloseTime:
		return func(evs []models.Event) func(i, j int) bool {
			return func(i, j int) bool {
				ti, iok := rep(evs, i).CloseAt()
				tj, jok := rep(evs, j).CloseAt()
				if iok != jok {
					return iok // parsable close times come first
				}
				if !iok {
					return false
				}
				return ti.Sub(now) < tj.Sub(now)
			}
		}
	default:
		return func(evs []models.Event) func(i, j int) bool {
			return func(i, j int) bool { return rep(evs, i).Liquidity() > rep(evs, j).Liquidity() }
		}
	}
}

// Pager implements incremental reveal over a filtered sequence: a fixed
// initial window that grows by a fixed step each time the consumer asks
// for more, capped at the sequence length. Changing the query resets the
// window.
type Pager struct {
	initial int
	step    int
	query   string
	limit   int
}

func NewPager(initial, step int) *Pager {
	if initial <= 0 {
		initial = 30
	}
	if step <= 0 {
		step = initial
	}
	return &Pager{initial: initial, step: step, limit: initial}
}

// SetQuery resets the reveal threshold when the filter input changes.
func (p *Pager) SetQuery(q string) {
	if q != p.query {
		p.query = q
		p.limit = p.initial
	}
}

// Advance grows the reveal threshold by one step, capped at total.
func (p *Pager) Advance(total int) {
	p.limit += p.step
	if p.limit > total {
		p.limit = total
	}
	if p.limit < p.initial {
		p.limit = p.initial
	}
}

// Window returns how many rows of a total are currently revealed.
func (p *Pager) Window(total int) int {
	if p.limit < total {
		return p.limit
	}
	return total
}
