package usecase

import (
	"time"

	"PredictPulse/internal/domain/models"
	"PredictPulse/internal/ranking"
)

// Browser serves the catalog listing: fuzzy filter, sort on the cached
// representative market, slice the requested window.
type Browser struct {
	catalog *CatalogHolder
	matcher ranking.Matcher
}

func NewBrowser(catalog *CatalogHolder, matcher ranking.Matcher) *Browser {
	return &Browser{catalog: catalog, matcher: matcher}
}

// BrowseResult is one page of the listing plus the total match count so
// clients can grow their window.
type BrowseResult struct {
	Events      []models.EventView `json:"events"`
	Total       int                `json:"total"`
	RefreshedAt string             `json:"refreshedAt,omitempty"`
}

func (b *Browser) Browse(req models.BrowseRequest) BrowseResult {
	snap := b.catalog.Snapshot()
	key := ranking.ParseSortKey(req.Sort)
	sorted := ranking.View(snap.Events, snap.Stats, b.matcher, req.Query, key)

	total := len(sorted)
	offset := req.Offset
	if offset > total {
		offset = total
	}
	end := offset + req.Limit
	if end > total {
		end = total
	}

	views := make([]models.EventView, 0, end-offset)
	for _, ev := range sorted[offset:end] {
		entry := snap.Stats[ev.Ticker]
		views = append(views, models.EventView{
			Event:          ev,
			Representative: entry.Representative,
			Stats:          entry.Stats,
		})
	}

	out := BrowseResult{Events: views, Total: total}
	if !snap.RefreshedAt.IsZero() {
		out.RefreshedAt = snap.RefreshedAt.UTC().Format(time.RFC3339)
	}
	return out
}
