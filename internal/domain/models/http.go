package models

// Requests and responses for the public HTTP endpoints. Defined in the
// domain package for consistency and reuse, in the same shape the
// validator and defaults middleware expect.

type BrowseRequest struct {
	Query  string `query:"q" json:"q"`
	Sort   string `query:"sort" json:"sort" default:"liquidity" validate:"oneof=liquidity volume open_interest probability close_time"`
	Limit  int    `query:"limit" json:"limit" default:"30" validate:"gte=1,lte=500"`
	Offset int    `query:"offset" json:"offset" default:"0" validate:"gte=0"`
}

// EventView is one browse/search result row: the event decorated with
// its cached representative market and aggregate stats.
type EventView struct {
	Event          Event      `json:"event"`
	Representative *Market    `json:"representative,omitempty"`
	Stats          EventStats `json:"stats"`
}

type RankRequest struct {
	Query string `json:"query" validate:"required,min=1"`
	TopK  int    `json:"topK" default:"100" validate:"gte=1,lte=500"`
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	UserID  string        `json:"user_id" default:"anonymous"`
	Message string        `json:"message" validate:"required,min=1"`
	History []ChatMessage `json:"chatHistory" validate:"dive"`
}

// RecommendedMarket is one event the assistant (or the fallback path)
// suggests, with the score it carried in the ranking pass that produced it.
type RecommendedMarket struct {
	EventTicker    string  `json:"eventTicker"`
	Reason         string  `json:"reason"`
	CompositeScore float64 `json:"compositeScore"`
}

type ChatResponse struct {
	Response           string              `json:"response"`
	RecommendedMarkets []RecommendedMarket `json:"recommendedMarkets"`
	QueryID            string              `json:"queryId"`
	Degraded           bool                `json:"degraded,omitempty"`
}

type PreferenceRequest struct {
	UserID      string `json:"user_id" query:"user_id" default:"anonymous"`
	EventTicker string `json:"event_ticker" validate:"required"`
}

type PreferencesQuery struct {
	UserID string `query:"user_id" json:"user_id" default:"anonymous"`
}

// Assistant collaborator wire shapes. The backend is an opaque service;
// only the JSON contract matters here.

type AssistantEventTitle struct {
	Title       string   `json:"title"`
	Platform    Platform `json:"platform"`
	EventTicker string   `json:"event_ticker"`
}

type AssistantRankedEvent struct {
	Title       string       `json:"title"`
	Platform    Platform     `json:"platform"`
	EventTicker string       `json:"event_ticker"`
	Metrics     EventMetrics `json:"metrics"`
	Score       float64      `json:"compositeScore"`
}

type AssistantRequest struct {
	Message         string                 `json:"message"`
	ChatHistory     []ChatMessage          `json:"chatHistory"`
	AllEventTitles  []AssistantEventTitle  `json:"allEventTitles"`
	RankedEvents    []AssistantRankedEvent `json:"rankedEvents"`
	UserPreferences Preferences            `json:"userPreferences"`
}

type AssistantReply struct {
	Response           string `json:"response"`
	RecommendedMarkets []struct {
		EventTicker string `json:"eventTicker"`
		Reason      string `json:"reason"`
	} `json:"recommendedMarkets"`
}
