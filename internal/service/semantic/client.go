package semantic

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"PredictPulse/internal/service/cache"
	xhttp "PredictPulse/pkg/http"
	"PredictPulse/pkg/logger"
)

// Client talks to the external embedding search service. Results are
// memoized for a short TTL keyed by query and topK; only the ticker
// lists are cached, never scores, so a stale entry can only affect
// candidate membership.
type Client struct {
	baseURL string
	topK    int
	client  *xhttp.Client
	memo    *cache.TTLCache
	ttl     time.Duration
	logger  *logger.Logger
}

type Config struct {
	URL      string
	TopK     int
	Timeout  time.Duration
	CacheTTL time.Duration
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.URL,
		topK:    cfg.TopK,
		client:  xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		memo:    cache.NewTTLCache(),
		ttl:     cfg.CacheTTL,
		logger:  log,
	}
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topK"`
}

type searchResponse struct {
	Results []struct {
		EventTicker string `json:"event_ticker"`
	} `json:"results"`
}

// Search returns the semantically closest event tickers for a query.
// The caller treats an error as "no semantic candidates".
func (c *Client) Search(ctx context.Context, query string, topK int) ([]string, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("semantic search not configured")
	}
	if topK <= 0 {
		topK = c.topK
	}

	key := query + "|" + strconv.Itoa(topK)
	if c.ttl > 0 {
		if v, ok := c.memo.Get(key); ok {
			return v.([]string), nil
		}
	}

	var resp searchResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/search",
		Body:   searchRequest{Query: query, TopK: topK},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	tickers := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		tickers = append(tickers, r.EventTicker)
	}

	if c.ttl > 0 {
		c.memo.Set(key, tickers, c.ttl)
	}
	c.logger.Debug("semantic search done",
		logger.String("query", query),
		logger.Int("results", len(tickers)),
	)
	return tickers, nil
}
