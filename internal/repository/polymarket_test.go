package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PredictPulse/internal/domain/models"
)

func TestMapPolymarketEvent(t *testing.T) {
	pe := polymarketEvent{
		ID:    "123",
		Slug:  "will-it-rain",
		Title: "Will it rain tomorrow?",
		Markets: []polymarketMarket{{
			ID:            "m-1",
			Question:      "Rain in NYC?",
			Active:        true,
			LiquidityNum:  1500.5,
			VolumeNum:     300,
			OutcomePrices: outcomePrices{0.65, 0.35},
			BestBid:       0.6,
			EndDate:       "2026-09-01T00:00:00Z",
		}, {
			ID:     "m-2",
			Active: false,
		}},
	}

	ev := mapPolymarketEvent(pe)
	assert.Equal(t, "will-it-rain", ev.Ticker, "slug preferred over id")
	assert.Equal(t, models.PlatformPolymarket, ev.Platform)
	require.Len(t, ev.Markets, 2)

	m := ev.Markets[0]
	assert.Equal(t, models.MarketStatusActive, m.Status)
	assert.Equal(t, "Rain in NYC?", m.Question)
	assert.Equal(t, 1500.5, m.Liquidity())
	assert.Equal(t, 300.0, m.Volume())
	assert.Equal(t, 300.0, m.OpenInterest(), "volume stands in for open interest")
	assert.Equal(t, 0.65, m.YesAsk())
	assert.Equal(t, 0.35, m.NoAsk())
	assert.Equal(t, 0.6, m.YesBid())

	assert.Equal(t, models.MarketStatusClosed, ev.Markets[1].Status)
}

func TestMapPolymarketEvent_FallbacksToIDAndLastTrade(t *testing.T) {
	pe := polymarketEvent{
		ID: "456",
		Markets: []polymarketMarket{{
			ID:             "m-1",
			Active:         true,
			LastTradePrice: 0.4,
		}},
	}

	ev := mapPolymarketEvent(pe)
	assert.Equal(t, "456", ev.Ticker)
	m := ev.Markets[0]
	assert.InDelta(t, 0.4, m.YesAsk(), 1e-9, "last trade price stands in for missing outcome prices")
	assert.InDelta(t, 0.6, m.NoAsk(), 1e-9)
}

func TestOutcomePrices_DecodesArrayAndStringForms(t *testing.T) {
	var direct outcomePrices
	require.NoError(t, json.Unmarshal([]byte(`["0.7","0.3"]`), &direct))
	require.Len(t, direct, 2)
	assert.Equal(t, models.Amount(0.7), direct[0])

	var encoded outcomePrices
	require.NoError(t, json.Unmarshal([]byte(`"[\"0.2\", \"0.8\"]"`), &encoded))
	require.Len(t, encoded, 2)
	assert.Equal(t, models.Amount(0.8), encoded[1])

	var junk outcomePrices
	require.NoError(t, json.Unmarshal([]byte(`"not json"`), &junk), "junk decodes to empty, not an error")
	assert.Empty(t, junk)
}
