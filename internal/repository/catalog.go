package repository

import (
	"context"

	"PredictPulse/internal/domain/models"
	domainrepo "PredictPulse/internal/domain/repository"
	"PredictPulse/pkg/logger"
)

// MultiSource combines per-platform catalog sources into one catalog.
// A failing platform is logged and skipped; the refresh succeeds with
// whatever the healthy platforms returned. Only when every source fails
// does Fetch report an error, so a stale snapshot is kept over an empty
// one.
type MultiSource struct {
	sources []domainrepo.CatalogSource
	logger  *logger.Logger
	metrics domainrepo.Metrics
}

func NewMultiSource(log *logger.Logger, m domainrepo.Metrics, sources ...domainrepo.CatalogSource) *MultiSource {
	return &MultiSource{sources: sources, logger: log, metrics: m}
}

func (s *MultiSource) Fetch(ctx context.Context) ([]models.Event, error) {
	var all []models.Event
	var lastErr error
	failed := 0

	for _, src := range s.sources {
		events, err := src.Fetch(ctx)
		if err != nil {
			failed++
			lastErr = err
			s.logger.Error("catalog source failed", logger.Error(err))
			if s.metrics != nil {
				s.metrics.RecordError("catalog_fetch")
			}
			continue
		}
		all = append(all, events...)
	}

	if failed == len(s.sources) && lastErr != nil {
		return nil, lastErr
	}
	return all, nil
}
