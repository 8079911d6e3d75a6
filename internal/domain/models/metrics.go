package models

import "time"

// EventMetrics are the per-event aggregates derived from active markets
// only. They are recomputed per ranking pass and never stored on the
// Event itself.
type EventMetrics struct {
	TotalLiquidity    float64 `json:"totalLiquidity"`
	TotalVolume       float64 `json:"totalVolume"`
	VolumeVelocity    float64 `json:"volumeVelocity"`
	AverageSpread     float64 `json:"avgSpread"`
	ActiveMarketCount int     `json:"marketCount"`
}

// RankedEvent pairs an event with its metrics and the query-relative
// composite score for one ranking pass. Scores are only comparable
// within the candidate set they were computed in.
type RankedEvent struct {
	Event          Event        `json:"event"`
	Metrics        EventMetrics `json:"metrics"`
	CompositeScore float64      `json:"compositeScore"`
}

// EventStats are the aggregate display stats cached per event alongside
// its representative market. Summed over active markets only.
type EventStats struct {
	TotalLiquidity    float64 `json:"totalLiquidity"`
	TotalVolume       float64 `json:"totalVolume"`
	TotalOpenInterest float64 `json:"totalOpenInterest"`
	ActiveMarketCount int     `json:"marketCount"`
}

// RankingResult is the outcome of one hybrid retrieval + scoring pass.
type RankingResult struct {
	QueryID       string        `json:"queryId"`
	Query         string        `json:"query"`
	Events        []RankedEvent `json:"events"`
	SemanticUsed  bool          `json:"semanticUsed"`
	KeywordCount  int           `json:"keywordCount"`
	FallbackUsed  bool          `json:"fallbackUsed"`
	Duration      time.Duration `json:"-"`
}

// RankingRecord is the audit-log row written per ranking pass.
type RankingRecord struct {
	QueryID        string
	Query          string
	CandidateCount int
	SemanticUsed   bool
	TopTickers     []string
	TopScores      []float64
	DurationMs     int64
	At             time.Time
}
