// Package neows fetches near-Earth-object close-approach data from a
// NeoWs-style feed. The feed needs no account, only an API key (the demo key
// works unauthenticated), but it rejects date ranges wider than a week, so
// the client clamps the range before the request rather than letting the
// feed reject it.
package neows

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
	"github.com/orbitdeck/space-data-pipeline/internal/observability"
)

// Client performs close-approach feed fetches.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a close-approach feed client.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// FetchFeed performs the network call for the (clamped) date range and
// decodes the response. Failures map onto domain.ErrUpstreamUnavailable or
// domain.ErrMalformedResponse; this feed has no credential short-circuit.
func (c *Client) FetchFeed(ctx context.Context, r domain.DateRange) (domain.RawNEOFeed, error) {
	r = r.Clamp(domain.Clock().Now().UTC())

	params := url.Values{
		"start_date": {r.Start.Format("2006-01-02")},
		"end_date":   {r.End.Format("2006-01-02")},
		"api_key":    {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/feed?"+params.Encode(), nil)
	if err != nil {
		return domain.RawNEOFeed{}, fmt.Errorf("neo feed: build request: %w", domain.ErrUpstreamUnavailable)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("neo").Observe(time.Since(start).Seconds())
	if err != nil {
		c.fail("neo fetch failed", err)
		return domain.RawNEOFeed{}, fmt.Errorf("neo feed: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.fail("neo fetch returned non-success status", fmt.Errorf("status %d", resp.StatusCode))
		return domain.RawNEOFeed{}, fmt.Errorf("neo feed: status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	var feed domain.RawNEOFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		c.fail("neo response decode failed", err)
		return domain.RawNEOFeed{}, fmt.Errorf("neo feed: decode: %w: %w", domain.ErrMalformedResponse, err)
	}

	c.metrics.UpstreamRequests.WithLabelValues("neo", "success").Inc()
	return feed, nil
}

func (c *Client) fail(msg string, err error) {
	c.logger.Error(msg, "feed", "neo", "error", err)
	c.metrics.UpstreamRequests.WithLabelValues("neo", "error").Inc()
}
