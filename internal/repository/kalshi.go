package repository

import (
	"context"
	"fmt"
	"strconv"

	"PredictPulse/internal/domain/models"
	xhttp "PredictPulse/pkg/http"
	"PredictPulse/pkg/logger"
)

// KalshiSource pulls open events with nested markets from the Kalshi
// trade API. The feed already uses the common shape, so no per-field
// mapping is needed beyond tagging the platform.
type KalshiSource struct {
	baseURL   string
	pageLimit int
	client    *xhttp.Client
	logger    *logger.Logger
}

func NewKalshiSource(baseURL string, pageLimit int, log *logger.Logger) *KalshiSource {
	return &KalshiSource{
		baseURL:   baseURL,
		pageLimit: pageLimit,
		client:    xhttp.NewClient(),
		logger:    log,
	}
}

type kalshiEventsPage struct {
	Events []models.Event `json:"events"`
	Cursor string         `json:"cursor"`
}

// Fetch walks the cursor-paginated events endpoint until the cursor
// runs out or a page comes back empty.
func (s *KalshiSource) Fetch(ctx context.Context) ([]models.Event, error) {
	var all []models.Event
	cursor := ""

	for {
		params := map[string][]string{
			"limit":               {strconv.Itoa(s.pageLimit)},
			"status":              {"open"},
			"with_nested_markets": {"true"},
		}
		if cursor != "" {
			params["cursor"] = []string{cursor}
		}

		var page kalshiEventsPage
		err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method:      xhttp.MethodGet,
			URL:         s.baseURL + "/events",
			QueryParams: params,
		}, &page)
		if err != nil {
			return nil, fmt.Errorf("kalshi events: %w", err)
		}

		for i := range page.Events {
			page.Events[i].Platform = models.PlatformKalshi
		}
		all = append(all, page.Events...)

		if page.Cursor == "" || len(page.Events) == 0 {
			break
		}
		cursor = page.Cursor
	}

	s.logger.Debug("kalshi catalog fetched", logger.Int("events", len(all)))
	return all, nil
}
