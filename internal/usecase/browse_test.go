package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PredictPulse/internal/domain/models"
	"PredictPulse/internal/ranking"
)

func TestBrowse_SortsAndPages(t *testing.T) {
	catalog := loadedCatalog(t,
		activeEvent("low", "low liquidity", 10),
		activeEvent("high", "high liquidity", 100),
		activeEvent("mid", "mid liquidity", 50),
	)
	b := NewBrowser(catalog, ranking.NewWeightedMatcher())

	res := b.Browse(models.BrowseRequest{Sort: "liquidity", Limit: 2})
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Events, 2)
	assert.Equal(t, "high", res.Events[0].Event.Ticker)
	assert.Equal(t, "mid", res.Events[1].Event.Ticker)
	require.NotNil(t, res.Events[0].Representative)
	assert.Equal(t, 100.0, res.Events[0].Stats.TotalLiquidity)

	next := b.Browse(models.BrowseRequest{Sort: "liquidity", Limit: 2, Offset: 2})
	require.Len(t, next.Events, 1)
	assert.Equal(t, "low", next.Events[0].Event.Ticker)
}

func TestBrowse_QueryFilters(t *testing.T) {
	catalog := loadedCatalog(t,
		activeEvent("BTC", "Bitcoin above 100k", 10),
		activeEvent("WEA", "NYC high temperature", 20),
	)
	b := NewBrowser(catalog, ranking.NewWeightedMatcher())

	res := b.Browse(models.BrowseRequest{Query: "bitcoin", Sort: "liquidity", Limit: 30})
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "BTC", res.Events[0].Event.Ticker)
}

func TestBrowse_OffsetPastEnd(t *testing.T) {
	catalog := loadedCatalog(t, activeEvent("A", "alpha", 10))
	b := NewBrowser(catalog, ranking.NewWeightedMatcher())

	res := b.Browse(models.BrowseRequest{Sort: "liquidity", Limit: 30, Offset: 99})
	assert.Equal(t, 1, res.Total)
	assert.Empty(t, res.Events)
}
