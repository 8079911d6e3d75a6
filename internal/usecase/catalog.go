package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"PredictPulse/internal/domain/models"
	domainrepo "PredictPulse/internal/domain/repository"
	"PredictPulse/internal/ranking"
	"PredictPulse/pkg/logger"
)

// Snapshot is one immutable view of the catalog: the events plus the
// per-event representative/stats cache derived from them. Readers get
// the whole thing or nothing; a refresh swaps the pointer atomically.
type Snapshot struct {
	Events      []models.Event
	Stats       ranking.StatsCache
	RefreshedAt time.Time
}

// CatalogHolder owns the current catalog snapshot and rebuilds it from
// the source on demand. A failed reload keeps the previous snapshot.
type CatalogHolder struct {
	source  domainrepo.CatalogSource
	logger  *logger.Logger
	metrics domainrepo.Metrics

	snap atomic.Pointer[Snapshot]

	mu       sync.Mutex
	onReload []func(*Snapshot)
}

func NewCatalogHolder(source domainrepo.CatalogSource, log *logger.Logger, m domainrepo.Metrics) *CatalogHolder {
	h := &CatalogHolder{source: source, logger: log, metrics: m}
	h.snap.Store(&Snapshot{Stats: ranking.StatsCache{}})
	return h
}

// Snapshot returns the current catalog view. Never nil.
func (h *CatalogHolder) Snapshot() *Snapshot {
	return h.snap.Load()
}

// OnReload registers a callback invoked after every successful reload.
func (h *CatalogHolder) OnReload(fn func(*Snapshot)) {
	h.mu.Lock()
	h.onReload = append(h.onReload, fn)
	h.mu.Unlock()
}

// Reload fetches the catalog and swaps in a fresh snapshot. The stats
// cache is rebuilt wholesale from the new events; nothing from the old
// snapshot carries over.
func (h *CatalogHolder) Reload(ctx context.Context) error {
	start := time.Now()
	events, err := h.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("catalog reload: %w", err)
	}

	snap := &Snapshot{
		Events:      events,
		Stats:       ranking.BuildStatsCache(events),
		RefreshedAt: time.Now(),
	}
	h.snap.Store(snap)

	if h.metrics != nil {
		counts := map[models.Platform]int{}
		for i := range events {
			counts[events[i].Platform]++
		}
		for platform, n := range counts {
			h.metrics.RecordCatalogSize(string(platform), n)
		}
	}
	h.logger.Info("catalog reloaded",
		logger.Int("events", len(events)),
		logger.Duration("took_ms", time.Since(start)),
	)

	h.mu.Lock()
	callbacks := make([]func(*Snapshot), len(h.onReload))
	copy(callbacks, h.onReload)
	h.mu.Unlock()
	for _, fn := range callbacks {
		fn(snap)
	}
	return nil
}
