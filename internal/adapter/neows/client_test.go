package neows

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
	"github.com/orbitdeck/space-data-pipeline/internal/observability"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "DEMO_KEY", 2*time.Second,
		slog.Default(), observability.NewMetricsForTesting())
}

func frozenClock(t *testing.T) time.Time {
	t.Helper()
	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { domain.SetClock(nil) })
	return at
}

func TestFetchFeed_Success(t *testing.T) {
	frozenClock(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DEMO_KEY", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"element_count": 1,
			"near_earth_objects": {
				"2026-08-20": [{
					"id": "3542519",
					"name": "(2010 PK9)",
					"is_potentially_hazardous_asteroid": true,
					"estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.11, "estimated_diameter_max": 0.25}},
					"close_approach_data": [{
						"epoch_date_close_approach": 1787255100000,
						"neo_reference_id": "3542519",
						"relative_velocity": {"kilometers_per_second": "18.13"},
						"miss_distance": {"kilometers": "28950.1"}
					}]
				}]
			}
		}`))
	}))
	defer srv.Close()

	feed, err := newTestClient(srv.URL).FetchFeed(context.Background(), domain.DateRange{})

	require.NoError(t, err)
	assert.Equal(t, 1, feed.ElementCount)
	require.Len(t, feed.ObjectsByDay["2026-08-20"], 1)
	assert.Equal(t, "3542519", feed.ObjectsByDay["2026-08-20"][0].ID)
}

func TestFetchFeed_DateRangeClampedInRequest(t *testing.T) {
	at := frozenClock(t)

	var params url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params = r.URL.Query()
		w.Write([]byte(`{"element_count":0,"near_earth_objects":{}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchFeed(context.Background(), domain.DateRange{
		Start: at,
		End:   at.AddDate(0, 0, 60),
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-08-20", params.Get("start_date"))
	assert.Equal(t, "2026-08-26", params.Get("end_date"), "range wider than the feed maximum must be clamped")
}

func TestFetchFeed_ZeroRangeDefaultsToToday(t *testing.T) {
	frozenClock(t)

	var params url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params = r.URL.Query()
		w.Write([]byte(`{"element_count":0,"near_earth_objects":{}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchFeed(context.Background(), domain.DateRange{})

	require.NoError(t, err)
	assert.Equal(t, "2026-08-20", params.Get("start_date"))
	assert.Equal(t, "2026-08-20", params.Get("end_date"))
}

func TestFetchFeed_RateLimitedIsUnavailable(t *testing.T) {
	frozenClock(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchFeed(context.Background(), domain.DateRange{})

	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestFetchFeed_BadJSONIsMalformed(t *testing.T) {
	frozenClock(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchFeed(context.Background(), domain.DateRange{})

	require.ErrorIs(t, err, domain.ErrMalformedResponse)
}
