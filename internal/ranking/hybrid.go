package ranking

import (
	"strings"

	"PredictPulse/internal/domain/models"
)

const (
	// Keyword retrieval caps matches at the first N found in catalog
	// iteration order; matches are not ranked by quality.
	keywordMatchCap = 50

	// Tokens this short are discarded before matching.
	minKeywordLen = 4
)

// KeywordTickers performs the local keyword-retrieval half of hybrid
// search: lower-case the query, split on whitespace, drop short tokens,
// and select events whose title+subtitle contains any surviving token as
// a substring. Capped at the first keywordMatchCap matches in catalog
// order.
func KeywordTickers(events []models.Event, query string) []string {
	var tokens []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) >= minKeywordLen {
			tokens = append(tokens, w)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	var out []string
	for i := range events {
		text := events[i].SearchText()
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				out = append(out, events[i].Ticker)
				break
			}
		}
		if len(out) >= keywordMatchCap {
			break
		}
	}
	return out
}

// Merge combines semantic and keyword retrieval results into one
// deduplicated candidate set of tickers. Upstream rank order is
// deliberately discarded; only membership matters, ordering is imposed
// later by the scorer. When both sources are empty the first fallbackSize
// tickers of fallbackPool are returned in catalog order, so the scorer
// always receives a non-trivial candidate set from a non-empty catalog.
func Merge(semantic, keyword []string, fallbackPool []models.Event, fallbackSize int) []string {
	seen := make(map[string]struct{}, len(semantic)+len(keyword))
	out := make([]string, 0, len(semantic)+len(keyword))
	for _, lst := range [][]string{semantic, keyword} {
		for _, t := range lst {
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	if len(out) > 0 {
		return out
	}

	if fallbackSize > len(fallbackPool) {
		fallbackSize = len(fallbackPool)
	}
	for i := 0; i < fallbackSize; i++ {
		out = append(out, fallbackPool[i].Ticker)
	}
	return out
}
