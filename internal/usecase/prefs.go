package usecase

import (
	"context"
	"fmt"
	"time"

	"PredictPulse/internal/domain/models"
	domainrepo "PredictPulse/internal/domain/repository"
	"PredictPulse/pkg/logger"
)

// Prefs applies preference actions to the store and streams each
// mutation to the learning pipeline. Stream failures are logged and
// dropped; the store is the source of truth.
type Prefs struct {
	store     domainrepo.PreferenceStore
	publisher domainrepo.InteractionPublisher
	metrics   domainrepo.Metrics
	logger    *logger.Logger
}

func NewPrefs(
	store domainrepo.PreferenceStore,
	publisher domainrepo.InteractionPublisher,
	m domainrepo.Metrics,
	log *logger.Logger,
) *Prefs {
	return &Prefs{store: store, publisher: publisher, metrics: m, logger: log}
}

func (p *Prefs) Apply(ctx context.Context, action, userID, ticker string) error {
	var err error
	switch action {
	case models.ActionLike:
		err = p.store.Like(ctx, userID, ticker)
	case models.ActionDismiss:
		err = p.store.Dismiss(ctx, userID, ticker)
	case models.ActionClick:
		err = p.store.Click(ctx, userID, ticker)
	default:
		return fmt.Errorf("unknown preference action %q", action)
	}
	if err != nil {
		return fmt.Errorf("apply %s: %w", action, err)
	}

	if p.metrics != nil {
		p.metrics.RecordInteraction(action)
	}
	if p.publisher != nil {
		in := models.Interaction{
			UserID:      userID,
			EventTicker: ticker,
			Action:      action,
			At:          time.Now().UTC(),
		}
		if err := p.publisher.Publish(ctx, in); err != nil {
			p.logger.Warn("interaction publish failed", logger.Error(err))
			if p.metrics != nil {
				p.metrics.RecordError("interaction_publish")
			}
		}
	}
	return nil
}

func (p *Prefs) Get(ctx context.Context, userID string) (models.Preferences, error) {
	return p.store.Get(ctx, userID)
}
