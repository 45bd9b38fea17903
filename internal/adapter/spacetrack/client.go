// Package spacetrack fetches satellite catalog records from a
// Space-Track-style feed. The feed authenticates with username/password
// submitted alongside the query in a single POST; it is rate-limited, so the
// client never retries — a failed fetch surfaces once and the pipeline falls
// back to the offline dataset.
package spacetrack

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
	"github.com/orbitdeck/space-data-pipeline/internal/observability"
)

// Client performs authenticated catalog fetches.
type Client struct {
	baseURL    string
	user       string
	password   string
	maxLimit   int
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a catalog feed client. Empty credentials are accepted
// here; FetchCatalog short-circuits before any network call when they are
// missing.
func NewClient(baseURL, user, password string, timeout time.Duration, maxLimit int, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		user:     user,
		password: password,
		maxLimit: maxLimit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// FetchCatalog performs the network call and decodes the response into raw
// catalog records. Failures map onto the pipeline taxonomy:
// domain.ErrUnauthenticated (no credentials, checked before any I/O),
// domain.ErrUpstreamUnavailable (transport/timeout/non-2xx), or
// domain.ErrMalformedResponse (decode failure).
func (c *Client) FetchCatalog(ctx context.Context, q domain.CatalogQuery) ([]domain.RawCatalogRecord, error) {
	if c.user == "" || c.password == "" {
		return nil, fmt.Errorf("catalog feed: %w", domain.ErrUnauthenticated)
	}

	form := url.Values{
		"identity": {c.user},
		"password": {c.password},
		"query":    {c.queryPath(q)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/ajaxauth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("catalog feed: build request: %w", domain.ErrUpstreamUnavailable)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("catalog").Observe(time.Since(start).Seconds())
	if err != nil {
		c.fail("catalog fetch failed", err)
		return nil, fmt.Errorf("catalog feed: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.fail("catalog credentials rejected", fmt.Errorf("status %d", resp.StatusCode))
		return nil, fmt.Errorf("catalog feed: status %d: %w", resp.StatusCode, domain.ErrUnauthenticated)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.fail("catalog fetch returned non-success status", fmt.Errorf("status %d", resp.StatusCode))
		return nil, fmt.Errorf("catalog feed: status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	var records []domain.RawCatalogRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		c.fail("catalog response decode failed", err)
		return nil, fmt.Errorf("catalog feed: decode: %w: %w", domain.ErrMalformedResponse, err)
	}

	c.metrics.UpstreamRequests.WithLabelValues("catalog", "success").Inc()
	return records, nil
}

// queryPath builds the feed's class/predicate query path from the typed
// query, clamping the limit to a sane positive bound.
func (c *Client) queryPath(q domain.CatalogQuery) string {
	parts := []string{"/basicspacedata/query/class/satcat"}

	if q.ObjectType != "" {
		parts = append(parts, "OBJECT_TYPE/"+feedTypeLabel(q.ObjectType))
	}
	if q.Country != "" {
		parts = append(parts, "COUNTRY/"+url.PathEscape(q.Country))
	}
	if q.ActiveOnly {
		parts = append(parts, "DECAY/null-val")
	}
	parts = append(parts,
		"limit/"+strconv.Itoa(domain.ClampLimit(q.Limit, c.maxLimit)),
		"orderby/NORAD_CAT_ID",
		"format/json",
	)
	return strings.Join(parts, "/")
}

// feedTypeLabel maps canonical types onto the feed's column values.
func feedTypeLabel(t domain.ObjectType) string {
	if t == domain.TypeRocketBody {
		return url.PathEscape("ROCKET BODY")
	}
	return string(t)
}

// fail records the single diagnostic log entry and error metric for a failed
// fetch. No retries: the feed is rate-limited and the fallback dataset is
// the designed degradation path.
func (c *Client) fail(msg string, err error) {
	c.logger.Error(msg, "feed", "catalog", "error", err)
	c.metrics.UpstreamRequests.WithLabelValues("catalog", "error").Inc()
}
