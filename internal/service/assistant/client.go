package assistant

import (
	"context"
	"fmt"
	"time"

	"PredictPulse/internal/domain/models"
	xhttp "PredictPulse/pkg/http"
)

// Client talks to the external chat backend. The payload carries the
// ranked context and user preferences; the reply comes back as free
// text plus structured recommendations.
type Client struct {
	baseURL string
	client  *xhttp.Client
}

type Config struct {
	URL     string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.URL,
		client:  xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
	}
}

func (c *Client) Complete(ctx context.Context, req models.AssistantRequest) (models.AssistantReply, error) {
	var reply models.AssistantReply
	if c.baseURL == "" {
		return reply, fmt.Errorf("assistant not configured")
	}
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/assist",
		Body:   req,
	}, &reply)
	if err != nil {
		return reply, fmt.Errorf("assistant complete: %w", err)
	}
	return reply, nil
}
