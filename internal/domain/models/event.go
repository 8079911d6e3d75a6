package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"PredictPulse/pkg/util"
)

// Platform identifies the source exchange of an event.
type Platform string

const (
	PlatformKalshi     Platform = "kalshi"
	PlatformPolymarket Platform = "polymarket"
)

// Market status values as normalized by catalog ingestion.
const (
	MarketStatusActive = "active"
	MarketStatusClosed = "closed"
)

// Amount is a numeric feed field tolerant of the upstream payload shape:
// numbers, numeric strings, null and absent values all decode, with
// anything unparsable coerced to zero. This keeps the zero-substitution
// contract in one place instead of scattered across call sites.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*a = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

// Market is one tradable yes/no contract within an Event.
type Market struct {
	Ticker       string `json:"ticker"`
	Status       string `json:"status"`
	Question     string `json:"yes_sub_title,omitempty"`
	LiquidityRaw Amount `json:"liquidity_dollars"`
	VolumeRaw    Amount `json:"volume"`
	Volume24hRaw Amount `json:"volume_24h"`
	OpenInterestRaw Amount `json:"open_interest"`
	YesBidRaw    Amount `json:"yes_bid_dollars"`
	YesAskRaw    Amount `json:"yes_ask_dollars"`
	NoBidRaw     Amount `json:"no_bid_dollars"`
	NoAskRaw     Amount `json:"no_ask_dollars"`
	CloseTimeRaw string `json:"close_time"`
}

// Zero-default accessors. Missing or unparsable numeric fields read as 0;
// the engine never propagates a missing-value error.

func (m *Market) Liquidity() float64    { return float64(m.LiquidityRaw) }
func (m *Market) Volume() float64       { return float64(m.VolumeRaw) }
func (m *Market) Volume24h() float64    { return float64(m.Volume24hRaw) }
func (m *Market) OpenInterest() float64 { return float64(m.OpenInterestRaw) }
func (m *Market) YesBid() float64       { return float64(m.YesBidRaw) }
func (m *Market) YesAsk() float64       { return float64(m.YesAskRaw) }
func (m *Market) NoBid() float64        { return float64(m.NoBidRaw) }
func (m *Market) NoAsk() float64        { return float64(m.NoAskRaw) }

// Spread returns ask_yes - bid_yes. Negative and zero values are data
// noise and are excluded from averages by the caller, not clamped here.
func (m *Market) Spread() float64 { return m.YesAsk() - m.YesBid() }

func (m *Market) IsActive() bool { return m.Status == MarketStatusActive }

// CloseAt parses the market close timestamp. ok is false when the field
// is absent or unparsable; callers decide the ordering policy for that.
func (m *Market) CloseAt() (time.Time, bool) {
	return util.ParseTime(m.CloseTimeRaw)
}

// Event is a named prediction topic aggregating one or more Markets.
// An Event is owned by its catalog snapshot and treated as immutable for
// the duration of a ranking pass.
type Event struct {
	Ticker       string   `json:"event_ticker"`
	Title        string   `json:"title"`
	SubTitle     string   `json:"sub_title,omitempty"`
	SeriesTicker string   `json:"series_ticker,omitempty"`
	Platform     Platform `json:"platform"`
	Markets      []Market `json:"markets"`
}

// ActiveMarkets returns the markets currently tradable, in feed order.
func (e *Event) ActiveMarkets() []Market {
	out := make([]Market, 0, len(e.Markets))
	for _, m := range e.Markets {
		if m.IsActive() {
			out = append(out, m)
		}
	}
	return out
}

// SearchText is the lower-cased haystack used by keyword retrieval.
func (e *Event) SearchText() string {
	return strings.ToLower(e.Title + " " + e.SubTitle)
}
