package usecase

import (
	"context"

	"PredictPulse/internal/domain/models"
	domainrepo "PredictPulse/internal/domain/repository"
	"PredictPulse/pkg/logger"
)

const (
	chatApology      = "Sorry, I couldn't process that request right now. Please try again."
	defaultRecReason = "Semantically relevant and high quality"
)

// Chat orchestrates an assistant turn: rank the catalog for the user's
// message, hand the assistant the ranked context plus preferences, then
// resolve its recommendations back against the ranked set. When the
// assistant returns no explicit picks, the top ranked events stand in.
type Chat struct {
	ranker    *Ranker
	assistant domainrepo.Assistant
	prefs     domainrepo.PreferenceStore
	metrics   domainrepo.Metrics
	logger    *logger.Logger

	contextSize int
	defaultRecs int
}

type ChatConfig struct {
	ContextSize int
	DefaultRecs int
}

func NewChat(
	ranker *Ranker,
	assistant domainrepo.Assistant,
	prefs domainrepo.PreferenceStore,
	m domainrepo.Metrics,
	log *logger.Logger,
	cfg ChatConfig,
) *Chat {
	return &Chat{
		ranker:      ranker,
		assistant:   assistant,
		prefs:       prefs,
		metrics:     m,
		logger:      log,
		contextSize: cfg.ContextSize,
		defaultRecs: cfg.DefaultRecs,
	}
}

func (c *Chat) Handle(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	result, err := c.ranker.Rank(ctx, req.Message, 0)
	if err != nil {
		return models.ChatResponse{}, err
	}

	prefs, err := c.prefs.Get(ctx, req.UserID)
	if err != nil {
		// Preferences are advisory; a store outage must not kill the turn.
		c.logger.Warn("preference load failed", logger.Error(err))
		prefs = models.Preferences{}
	}

	top := result.Events
	if len(top) > c.contextSize {
		top = top[:c.contextSize]
	}

	assistReq := models.AssistantRequest{
		Message:         req.Message,
		ChatHistory:     req.History,
		AllEventTitles:  make([]models.AssistantEventTitle, 0, len(result.Events)),
		RankedEvents:    make([]models.AssistantRankedEvent, 0, len(top)),
		UserPreferences: prefs,
	}
	for _, re := range result.Events {
		assistReq.AllEventTitles = append(assistReq.AllEventTitles, models.AssistantEventTitle{
			Title:       re.Event.Title,
			Platform:    re.Event.Platform,
			EventTicker: re.Event.Ticker,
		})
	}
	for _, re := range top {
		assistReq.RankedEvents = append(assistReq.RankedEvents, models.AssistantRankedEvent{
			Title:       re.Event.Title,
			Platform:    re.Event.Platform,
			EventTicker: re.Event.Ticker,
			Metrics:     re.Metrics,
			Score:       re.CompositeScore,
		})
	}

	reply, err := c.assistant.Complete(ctx, assistReq)
	if err != nil {
		c.logger.Error("assistant call failed", logger.Error(err))
		if c.metrics != nil {
			c.metrics.RecordError("assistant")
		}
		return models.ChatResponse{
			Response: chatApology,
			QueryID:  result.QueryID,
			Degraded: true,
		}, nil
	}

	recs := c.resolveRecommendations(reply, result.Events, prefs)
	return models.ChatResponse{
		Response:           reply.Response,
		RecommendedMarkets: recs,
		QueryID:            result.QueryID,
	}, nil
}

// resolveRecommendations maps the assistant's picks back onto the
// ranked set, drops anything it hallucinated or the user dismissed, and
// falls back to the top ranked events when nothing usable remains.
func (c *Chat) resolveRecommendations(
	reply models.AssistantReply,
	ranked []models.RankedEvent,
	prefs models.Preferences,
) []models.RecommendedMarket {
	byTicker := make(map[string]*models.RankedEvent, len(ranked))
	for i := range ranked {
		byTicker[ranked[i].Event.Ticker] = &ranked[i]
	}

	var recs []models.RecommendedMarket
	for _, rec := range reply.RecommendedMarkets {
		re, ok := byTicker[rec.EventTicker]
		if !ok {
			c.logger.Debug("assistant recommended unknown ticker",
				logger.String("ticker", rec.EventTicker))
			continue
		}
		if prefs.HasDismissed(rec.EventTicker) {
			continue
		}
		recs = append(recs, models.RecommendedMarket{
			EventTicker:    rec.EventTicker,
			Reason:         rec.Reason,
			CompositeScore: re.CompositeScore,
		})
	}

	if len(recs) == 0 {
		for _, re := range ranked {
			if len(recs) >= c.defaultRecs {
				break
			}
			if prefs.HasDismissed(re.Event.Ticker) {
				continue
			}
			recs = append(recs, models.RecommendedMarket{
				EventTicker:    re.Event.Ticker,
				Reason:         defaultRecReason,
				CompositeScore: re.CompositeScore,
			})
		}
	}

	// Ranked events are already score-descending; explicit assistant
	// picks may not be.
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j].CompositeScore > recs[j-1].CompositeScore; j-- {
			recs[j], recs[j-1] = recs[j-1], recs[j]
		}
	}
	return recs
}
