package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PredictPulse/internal/domain/models"
	"PredictPulse/internal/repository"
)

type stubAssistant struct {
	reply models.AssistantReply
	err   error
	got   *models.AssistantRequest
}

func (s *stubAssistant) Complete(ctx context.Context, req models.AssistantRequest) (models.AssistantReply, error) {
	s.got = &req
	return s.reply, s.err
}

func newTestChat(t *testing.T, catalog *CatalogHolder, sem *stubSemantic, assist *stubAssistant, store *repository.MemoryPreferenceStore) *Chat {
	t.Helper()
	ranker := NewRanker(catalog, sem, nil, nil, testLogger(t), RankerConfig{
		SemanticTimeout: time.Second,
		DefaultTopK:     100,
		FallbackSize:    150,
	})
	return NewChat(ranker, assist, store, nil, testLogger(t), ChatConfig{
		ContextSize: 150,
		DefaultRecs: 5,
	})
}

func TestChat_ExplicitRecommendationsResolved(t *testing.T) {
	catalog := loadedCatalog(t,
		activeEvent("BTC", "Bitcoin above 100k", 500),
		activeEvent("ETH", "Ethereum ETF approval", 300),
	)
	assist := &stubAssistant{reply: models.AssistantReply{
		Response: "Bitcoin looks most liquid.",
		RecommendedMarkets: []struct {
			EventTicker string `json:"eventTicker"`
			Reason      string `json:"reason"`
		}{
			{EventTicker: "BTC", Reason: "deep liquidity"},
			{EventTicker: "GHOST", Reason: "does not exist"},
		},
	}}
	chat := newTestChat(t, catalog, &stubSemantic{tickers: []string{"BTC", "ETH"}}, assist, repository.NewMemoryPreferenceStore())

	resp, err := chat.Handle(context.Background(), models.ChatRequest{UserID: "u1", Message: "bitcoin outlook"})
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin looks most liquid.", resp.Response)
	require.Len(t, resp.RecommendedMarkets, 1, "hallucinated tickers are dropped")
	assert.Equal(t, "BTC", resp.RecommendedMarkets[0].EventTicker)
	assert.Equal(t, "deep liquidity", resp.RecommendedMarkets[0].Reason)
	assert.Greater(t, resp.RecommendedMarkets[0].CompositeScore, 0.0)

	require.NotNil(t, assist.got)
	assert.Len(t, assist.got.RankedEvents, 2)
	assert.Len(t, assist.got.AllEventTitles, 2)
}

func TestChat_NoRecommendationsFallsBackToTopRanked(t *testing.T) {
	catalog := loadedCatalog(t,
		activeEvent("A", "alpha market", 100),
		activeEvent("B", "beta market", 50),
		activeEvent("C", "gamma market", 10),
	)
	assist := &stubAssistant{reply: models.AssistantReply{Response: "Here are some thoughts."}}
	chat := newTestChat(t, catalog, &stubSemantic{tickers: []string{"A", "B", "C"}}, assist, repository.NewMemoryPreferenceStore())

	resp, err := chat.Handle(context.Background(), models.ChatRequest{UserID: "u1", Message: "market overview"})
	require.NoError(t, err)
	require.Len(t, resp.RecommendedMarkets, 3)
	assert.Equal(t, "A", resp.RecommendedMarkets[0].EventTicker, "defaults come from the top of the ranking")
	for _, rec := range resp.RecommendedMarkets {
		assert.Equal(t, defaultRecReason, rec.Reason)
	}
}

func TestChat_DismissedEventsNeverRecommended(t *testing.T) {
	catalog := loadedCatalog(t,
		activeEvent("A", "alpha market", 100),
		activeEvent("B", "beta market", 50),
	)
	store := repository.NewMemoryPreferenceStore()
	require.NoError(t, store.Dismiss(context.Background(), "u1", "A"))

	assist := &stubAssistant{reply: models.AssistantReply{Response: "ok"}}
	chat := newTestChat(t, catalog, &stubSemantic{tickers: []string{"A", "B"}}, assist, store)

	resp, err := chat.Handle(context.Background(), models.ChatRequest{UserID: "u1", Message: "market overview"})
	require.NoError(t, err)
	for _, rec := range resp.RecommendedMarkets {
		assert.NotEqual(t, "A", rec.EventTicker)
	}
}

func TestChat_AssistantFailureDegrades(t *testing.T) {
	catalog := loadedCatalog(t, activeEvent("A", "alpha market", 100))
	assist := &stubAssistant{err: errors.New("model overloaded")}
	chat := newTestChat(t, catalog, &stubSemantic{tickers: []string{"A"}}, assist, repository.NewMemoryPreferenceStore())

	resp, err := chat.Handle(context.Background(), models.ChatRequest{UserID: "u1", Message: "hello"})
	require.NoError(t, err, "assistant outage is a degraded response, not an error")
	assert.True(t, resp.Degraded)
	assert.Equal(t, chatApology, resp.Response)
	assert.Empty(t, resp.RecommendedMarkets)
	assert.NotEmpty(t, resp.QueryID)
}
