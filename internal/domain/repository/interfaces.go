package repository

import (
	"context"

	"PredictPulse/internal/domain/models"
)

// CatalogSource supplies the full event catalog in the common shape.
// Normalization (numeric coercion, status derivation) happens inside the
// source; the engine downstream assumes it already happened.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]models.Event, error)
}

// SemanticSearcher is the external similarity-search collaborator.
// Implementations return ranked tickers; the merger only uses membership.
// Failures surface as errors here and are downgraded to an empty list by
// the caller (degrade, don't fail).
type SemanticSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]string, error)
}

// Assistant is the external chat/LLM collaborator.
type Assistant interface {
	Complete(ctx context.Context, req models.AssistantRequest) (models.AssistantReply, error)
}

// PreferenceStore persists per-user liked/dismissed/clicked ticker sets.
// Liking removes the ticker from dismissed and vice versa; clicking is
// additive. The mutual-exclusivity invariant lives in the store.
type PreferenceStore interface {
	Like(ctx context.Context, userID, ticker string) error
	Dismiss(ctx context.Context, userID, ticker string) error
	Click(ctx context.Context, userID, ticker string) error
	Get(ctx context.Context, userID string) (models.Preferences, error)
}

// RankingLog is the optional audit sink for ranking passes.
type RankingLog interface {
	Record(ctx context.Context, rec models.RankingRecord) error
}

// InteractionPublisher streams preference interactions to the learning
// pipeline. Publish failures are logged and dropped by callers.
type InteractionPublisher interface {
	Publish(ctx context.Context, in models.Interaction) error
}

// Metrics abstracts the operational metrics recorder.
type Metrics interface {
	RecordRankingPass(seconds float64, candidates int)
	RecordSemanticDegraded()
	RecordCatalogSize(platform string, events int)
	RecordInteraction(action string)
	RecordError(kind string)
}
