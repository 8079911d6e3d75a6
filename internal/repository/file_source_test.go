package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PredictPulse/internal/domain/models"
)

func TestFileSource_ReadsSnapshotEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	payload := `{
		"events": [
			{
				"event_ticker": "KX-TEST",
				"title": "Test event",
				"markets": [
					{"ticker": "KX-TEST-M", "status": "active", "liquidity_dollars": "1200.50", "volume": 40, "yes_bid_dollars": 0.4, "yes_ask_dollars": 0.45, "no_bid_dollars": 0.55, "no_ask_dollars": 0.6}
				]
			}
		],
		"metadata": {"total_events": 1}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	src := NewFileSource(path, models.PlatformKalshi)
	events, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "KX-TEST", events[0].Ticker)
	assert.Equal(t, models.PlatformKalshi, events[0].Platform, "platform filled when absent")
	require.Len(t, events[0].Markets, 1)
	assert.Equal(t, 1200.5, events[0].Markets[0].Liquidity(), "string amounts coerce")
	assert.Equal(t, 0.55, events[0].Markets[0].NoBid())
	assert.Equal(t, 0.6, events[0].Markets[0].NoAsk())
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource("/nonexistent/events.json", models.PlatformKalshi)
	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}
