package spacetrack

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
	"github.com/orbitdeck/space-data-pipeline/internal/observability"
)

const (
	testUser = "ops@example.com"
	testPass = "hunter2"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, testUser, testPass, 2*time.Second, 5000,
		slog.Default(), observability.NewMetricsForTesting())
}

func TestFetchCatalog_MissingCredentialsShortCircuits(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", 2*time.Second, 5000,
		slog.Default(), observability.NewMetricsForTesting())

	_, err := c.FetchCatalog(context.Background(), domain.CatalogQuery{})

	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, 0, requests, "missing credentials must not reach the network")
}

func TestFetchCatalog_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, testUser, r.PostFormValue("identity"))
		assert.Equal(t, testPass, r.PostFormValue("password"))
		assert.Contains(t, r.PostFormValue("query"), "class/satcat")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"NORAD_CAT_ID":"25544","OBJECT_NAME":"ISS (ZARYA)","OBJECT_TYPE":"PAYLOAD","APOGEE":"420","PERIGEE":"415"}]`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).FetchCatalog(context.Background(), domain.CatalogQuery{})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "25544", records[0].NoradCatID)
	assert.Equal(t, "420", records[0].Apogee)
}

func TestFetchCatalog_QueryConstruction(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		query = r.PostFormValue("query")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchCatalog(context.Background(), domain.CatalogQuery{
		ObjectType: domain.TypeRocketBody,
		Country:    "US",
		ActiveOnly: true,
		Limit:      9999, // above the configured max of 5000
	})

	require.NoError(t, err)
	assert.Contains(t, query, "OBJECT_TYPE/ROCKET%20BODY")
	assert.Contains(t, query, "COUNTRY/US")
	assert.Contains(t, query, "DECAY/null-val")
	assert.Contains(t, query, "limit/5000", "limit must be clamped before the request")
	assert.Contains(t, query, "format/json")
}

func TestFetchCatalog_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchCatalog(context.Background(), domain.CatalogQuery{})

	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestFetchCatalog_RejectedCredentialsAreUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchCatalog(context.Background(), domain.CatalogQuery{})

	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestFetchCatalog_BadJSONIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"this is": "not an array`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchCatalog(context.Background(), domain.CatalogQuery{})

	require.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestFetchCatalog_ConnectionRefusedIsUnavailable(t *testing.T) {
	// Port from a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).FetchCatalog(context.Background(), domain.CatalogQuery{})

	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
