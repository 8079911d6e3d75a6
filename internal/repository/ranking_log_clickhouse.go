package repository

import (
	"context"
	"fmt"
	"strings"

	"PredictPulse/internal/domain/models"
	"PredictPulse/pkg/clickhouse"
)

// ClickHouseRankingLog is the audit sink for ranking passes. One row
// per pass with the top tickers and scores; useful for offline weight
// tuning and query analysis. Write failures never block a ranking pass.
type ClickHouseRankingLog struct {
	client *clickhouse.Client
	table  string
}

func NewClickHouseRankingLog(ctx context.Context, client *clickhouse.Client, table string) (*ClickHouseRankingLog, error) {
	l := &ClickHouseRankingLog{client: client, table: table}
	if err := l.initSchema(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *ClickHouseRankingLog) initSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			query_id        String,
			query           String,
			candidate_count UInt32,
			semantic_used   UInt8,
			top_tickers     Array(String),
			top_scores      Array(Float64),
			duration_ms     Int64,
			recorded_at     DateTime64(3)
		)
		ENGINE = MergeTree()
		ORDER BY (recorded_at, query_id)
		TTL toDateTime(recorded_at) + INTERVAL 90 DAY
	`, l.table)
	return l.client.InitSchema(ctx, []string{stmt})
}

func (l *ClickHouseRankingLog) Close() error {
	return l.client.Close()
}

func (l *ClickHouseRankingLog) Record(ctx context.Context, rec models.RankingRecord) error {
	semanticUsed := uint8(0)
	if rec.SemanticUsed {
		semanticUsed = 1
	}
	query := fmt.Sprintf(`
		INSERT INTO %s
			(query_id, query, candidate_count, semantic_used, top_tickers, top_scores, duration_ms, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, l.table)
	_, err := l.client.DB().ExecContext(ctx, strings.TrimSpace(query),
		rec.QueryID,
		rec.Query,
		uint32(rec.CandidateCount),
		semanticUsed,
		rec.TopTickers,
		rec.TopScores,
		rec.DurationMs,
		rec.At,
	)
	if err != nil {
		return fmt.Errorf("insert ranking record: %w", err)
	}
	return nil
}
