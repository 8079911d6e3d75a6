package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"PredictPulse/internal/domain/models"
	domainrepo "PredictPulse/internal/domain/repository"
	"PredictPulse/internal/ranking"
	"PredictPulse/pkg/logger"
)

// Ranker runs one hybrid retrieval + scoring pass over the current
// catalog snapshot. The semantic leg runs under its own timeout and
// degrades to an empty candidate list on any failure; keyword retrieval
// and the popularity fallback always run locally.
type Ranker struct {
	catalog  *CatalogHolder
	semantic domainrepo.SemanticSearcher
	auditLog domainrepo.RankingLog
	metrics  domainrepo.Metrics
	logger   *logger.Logger

	semanticTimeout time.Duration
	defaultTopK     int
	fallbackSize    int
}

type RankerConfig struct {
	SemanticTimeout time.Duration
	DefaultTopK     int
	FallbackSize    int
}

func NewRanker(
	catalog *CatalogHolder,
	semantic domainrepo.SemanticSearcher,
	auditLog domainrepo.RankingLog,
	m domainrepo.Metrics,
	log *logger.Logger,
	cfg RankerConfig,
) *Ranker {
	return &Ranker{
		catalog:         catalog,
		semantic:        semantic,
		auditLog:        auditLog,
		metrics:         m,
		logger:          log,
		semanticTimeout: cfg.SemanticTimeout,
		defaultTopK:     cfg.DefaultTopK,
		fallbackSize:    cfg.FallbackSize,
	}
}

// Rank retrieves candidates for the query, extracts metrics and scores
// them. Scores are relative to this candidate set only.
func (r *Ranker) Rank(ctx context.Context, query string, topK int) (models.RankingResult, error) {
	start := time.Now()
	if topK <= 0 {
		topK = r.defaultTopK
	}

	result := models.RankingResult{
		QueryID: uuid.NewString(),
		Query:   query,
	}

	snap := r.catalog.Snapshot()
	if len(snap.Events) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	// Semantic retrieval runs concurrently with local keyword matching.
	type semanticOut struct {
		tickers []string
		err     error
	}
	semCh := make(chan semanticOut, 1)
	go func() {
		semCtx, cancel := context.WithTimeout(ctx, r.semanticTimeout)
		defer cancel()
		tickers, err := r.semantic.Search(semCtx, query, topK)
		semCh <- semanticOut{tickers: tickers, err: err}
	}()

	keyword := ranking.KeywordTickers(snap.Events, query)

	sem := <-semCh
	semanticTickers := sem.tickers
	if sem.err != nil {
		semanticTickers = nil
		r.logger.Warn("semantic search degraded", logger.Error(sem.err))
		if r.metrics != nil {
			r.metrics.RecordSemanticDegraded()
		}
	}

	// Only events with at least one active market can be scored, so the
	// popularity fallback draws from those.
	fallbackPool := make([]models.Event, 0, len(snap.Events))
	for i := range snap.Events {
		if len(snap.Events[i].ActiveMarkets()) > 0 {
			fallbackPool = append(fallbackPool, snap.Events[i])
		}
	}

	merged := ranking.Merge(semanticTickers, keyword, fallbackPool, r.fallbackSize)
	result.SemanticUsed = sem.err == nil && len(sem.tickers) > 0
	result.KeywordCount = len(keyword)
	result.FallbackUsed = len(semanticTickers) == 0 && len(keyword) == 0

	byTicker := make(map[string]*models.Event, len(snap.Events))
	for i := range snap.Events {
		byTicker[snap.Events[i].Ticker] = &snap.Events[i]
	}

	candidates := make([]models.RankedEvent, 0, len(merged))
	for _, ticker := range merged {
		ev, ok := byTicker[ticker]
		if !ok {
			continue
		}
		metrics, ok := ranking.ExtractMetrics(ev)
		if !ok {
			continue
		}
		candidates = append(candidates, models.RankedEvent{Event: *ev, Metrics: metrics})
	}

	result.Events = ranking.ScoreCandidates(candidates)
	result.Duration = time.Since(start)

	if r.metrics != nil {
		r.metrics.RecordRankingPass(result.Duration.Seconds(), len(result.Events))
	}
	r.audit(result)
	return result, nil
}

// audit writes the pass to the ranking log without blocking the caller.
func (r *Ranker) audit(res models.RankingResult) {
	if r.auditLog == nil {
		return
	}

	const auditTop = 10
	n := len(res.Events)
	if n > auditTop {
		n = auditTop
	}
	rec := models.RankingRecord{
		QueryID:        res.QueryID,
		Query:          res.Query,
		CandidateCount: len(res.Events),
		SemanticUsed:   res.SemanticUsed,
		TopTickers:     make([]string, 0, n),
		TopScores:      make([]float64, 0, n),
		DurationMs:     res.Duration.Milliseconds(),
		At:             time.Now(),
	}
	for i := 0; i < n; i++ {
		rec.TopTickers = append(rec.TopTickers, res.Events[i].Event.Ticker)
		rec.TopScores = append(rec.TopScores, res.Events[i].CompositeScore)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.auditLog.Record(ctx, rec); err != nil {
			r.logger.Warn("ranking audit write failed", logger.Error(err))
			if r.metrics != nil {
				r.metrics.RecordError("ranking_log")
			}
		}
	}()
}
