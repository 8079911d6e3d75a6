package ranking

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"PredictPulse/internal/domain/models"
)

// Matcher is the pluggable free-text filter used by the view pipeline.
// Exact fuzzy semantics are a library concern; the field weights and the
// minimum matchable fragment length are behavioral contracts.
type Matcher interface {
	Match(ev *models.Event, query string) bool
}

// Field weights for the weighted fuzzy filter.
const (
	weightTitle    = 3.0
	weightSubTitle = 2.0
	weightSeries   = 1.5
	weightQuestion = 1.5

	// Queries shorter than this do not filter at all.
	minMatchLength = 2

	// Distance threshold, scaled down by field weight: heavier fields
	// tolerate sloppier matches. Tuned for precision at short queries.
	matchThreshold = 0.3
)

// WeightedMatcher scores a query against the event's weighted text
// fields using normalized fuzzy matching. A substring hit on any field
// always passes; otherwise the best weighted edit-distance ratio must
// clear the threshold.
type WeightedMatcher struct{}

func NewWeightedMatcher() *WeightedMatcher { return &WeightedMatcher{} }

func (wm *WeightedMatcher) Match(ev *models.Event, query string) bool {
	query = strings.TrimSpace(query)
	if len(query) < minMatchLength {
		return true
	}

	if wm.matchField(query, ev.Title, weightTitle) ||
		wm.matchField(query, ev.SubTitle, weightSubTitle) ||
		wm.matchField(query, ev.SeriesTicker, weightSeries) {
		return true
	}
	for i := range ev.Markets {
		if wm.matchField(query, ev.Markets[i].Question, weightQuestion) {
			return true
		}
	}
	return false
}

func (wm *WeightedMatcher) matchField(query, text string, weight float64) bool {
	if text == "" {
		return false
	}
	if strings.Contains(strings.ToLower(text), strings.ToLower(query)) {
		return true
	}
	rank := fuzzy.RankMatchNormalizedFold(query, text)
	if rank < 0 {
		return false
	}
	// rank is the edit distance; relative to the haystack length and
	// weighted so that title matches survive more noise than market text.
	ratio := float64(rank) / float64(len(text)) / weight
	return ratio <= matchThreshold
}
