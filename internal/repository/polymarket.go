package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"PredictPulse/internal/domain/models"
	xhttp "PredictPulse/pkg/http"
	"PredictPulse/pkg/logger"
)

// PolymarketSource pulls active events from the gamma API and maps them
// into the common catalog shape. Polymarket has no open interest, so
// volume stands in for it, and outcome prices stand in for the ask side
// of the book.
type PolymarketSource struct {
	baseURL   string
	pageLimit int
	client    *xhttp.Client
	logger    *logger.Logger
}

func NewPolymarketSource(baseURL string, pageLimit int, log *logger.Logger) *PolymarketSource {
	return &PolymarketSource{
		baseURL:   baseURL,
		pageLimit: pageLimit,
		client:    xhttp.NewClient(),
		logger:    log,
	}
}

type polymarketEvent struct {
	ID      string             `json:"id"`
	Slug    string             `json:"slug"`
	Title   string             `json:"title"`
	Markets []polymarketMarket `json:"markets"`
}

type polymarketMarket struct {
	ID             string        `json:"id"`
	Question       string        `json:"question"`
	Active         bool          `json:"active"`
	LiquidityNum   models.Amount `json:"liquidityNum"`
	VolumeNum      models.Amount `json:"volumeNum"`
	OutcomePrices  outcomePrices `json:"outcomePrices"`
	LastTradePrice models.Amount `json:"lastTradePrice"`
	BestBid        models.Amount `json:"bestBid"`
	EndDate        string        `json:"endDate"`
}

// outcomePrices arrives either as a JSON array of numeric strings or as
// a string containing that array. Both decode to the same slice.
type outcomePrices []models.Amount

func (p *outcomePrices) UnmarshalJSON(b []byte) error {
	*p = nil
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return nil
		}
		b = []byte(inner)
		if len(b) == 0 || b[0] != '[' {
			return nil
		}
	}
	var vals []models.Amount
	if err := json.Unmarshal(b, &vals); err != nil {
		return nil
	}
	*p = vals
	return nil
}

func (p outcomePrices) at(i int) models.Amount {
	if i < len(p) {
		return p[i]
	}
	return 0
}

// Fetch walks the offset-paginated events endpoint until a short page.
func (s *PolymarketSource) Fetch(ctx context.Context) ([]models.Event, error) {
	var all []models.Event
	offset := 0

	for {
		var page []polymarketEvent
		err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    s.baseURL + "/events",
			QueryParams: map[string][]string{
				"limit":    {strconv.Itoa(s.pageLimit)},
				"offset":   {strconv.Itoa(offset)},
				"active":   {"true"},
				"closed":   {"false"},
				"archived": {"false"},
			},
		}, &page)
		if err != nil {
			return nil, fmt.Errorf("polymarket events: %w", err)
		}
		if len(page) == 0 {
			break
		}

		for _, pe := range page {
			all = append(all, mapPolymarketEvent(pe))
		}

		if len(page) < s.pageLimit {
			break
		}
		offset += s.pageLimit
	}

	s.logger.Debug("polymarket catalog fetched", logger.Int("events", len(all)))
	return all, nil
}

func mapPolymarketEvent(pe polymarketEvent) models.Event {
	ticker := pe.Slug
	if ticker == "" {
		ticker = pe.ID
	}

	ev := models.Event{
		Ticker:   ticker,
		Title:    pe.Title,
		Platform: models.PlatformPolymarket,
		Markets:  make([]models.Market, 0, len(pe.Markets)),
	}
	for _, pm := range pe.Markets {
		status := models.MarketStatusClosed
		if pm.Active {
			status = models.MarketStatusActive
		}
		yesAsk := pm.OutcomePrices.at(0)
		if yesAsk == 0 {
			yesAsk = pm.LastTradePrice
		}
		noAsk := pm.OutcomePrices.at(1)
		if noAsk == 0 && pm.LastTradePrice != 0 {
			noAsk = 1 - pm.LastTradePrice
		}
		ev.Markets = append(ev.Markets, models.Market{
			Ticker:       pm.ID,
			Status:       status,
			Question:     pm.Question,
			LiquidityRaw: pm.LiquidityNum,
			VolumeRaw:    pm.VolumeNum,
			// No open interest on Polymarket; volume stands in.
			OpenInterestRaw: pm.VolumeNum,
			YesBidRaw:       pm.BestBid,
			YesAskRaw:       yesAsk,
			NoAskRaw:        noAsk,
			CloseTimeRaw:    pm.EndDate,
		})
	}
	return ev
}
