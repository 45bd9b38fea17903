package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
	"github.com/orbitdeck/space-data-pipeline/internal/observability"
)

type countingCatalogSource struct {
	calls   int
	records []domain.RawCatalogRecord
	err     error
}

func (m *countingCatalogSource) FetchCatalog(_ context.Context, _ domain.CatalogQuery) ([]domain.RawCatalogRecord, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func fakeClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()
	fc := clockwork.NewFakeClockAt(time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fc)
	t.Cleanup(func() { domain.SetClock(nil) })
	return fc
}

func TestCachedCatalogSource_Hit(t *testing.T) {
	fakeClock(t)

	inner := &countingCatalogSource{records: []domain.RawCatalogRecord{{NoradCatID: "1"}}}
	cached := NewCachedCatalogSource(inner, 10, time.Hour, observability.NewMetricsForTesting())
	q := domain.CatalogQuery{ObjectType: domain.TypePayload, Limit: 100}

	r1, err := cached.FetchCatalog(context.Background(), q)
	require.NoError(t, err)
	r2, err := cached.FetchCatalog(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedCatalogSource_DistinctQueriesMiss(t *testing.T) {
	fakeClock(t)

	inner := &countingCatalogSource{}
	cached := NewCachedCatalogSource(inner, 10, time.Hour, observability.NewMetricsForTesting())

	_, err := cached.FetchCatalog(context.Background(), domain.CatalogQuery{Country: "US"})
	require.NoError(t, err)
	_, err = cached.FetchCatalog(context.Background(), domain.CatalogQuery{Country: "FR"})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedCatalogSource_TTLExpiry(t *testing.T) {
	fc := fakeClock(t)

	inner := &countingCatalogSource{}
	cached := NewCachedCatalogSource(inner, 10, time.Hour, observability.NewMetricsForTesting())
	q := domain.CatalogQuery{Limit: 100}

	_, err := cached.FetchCatalog(context.Background(), q)
	require.NoError(t, err)

	fc.Advance(30 * time.Minute)
	_, err = cached.FetchCatalog(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "still fresh at half the TTL")

	fc.Advance(31 * time.Minute)
	_, err = cached.FetchCatalog(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "expired entries refetch")
}

func TestCachedCatalogSource_ErrorsNotCached(t *testing.T) {
	fakeClock(t)

	inner := &countingCatalogSource{err: domain.ErrUpstreamUnavailable}
	cached := NewCachedCatalogSource(inner, 10, time.Hour, observability.NewMetricsForTesting())
	q := domain.CatalogQuery{Limit: 100}

	_, err := cached.FetchCatalog(context.Background(), q)
	require.Error(t, err)
	_, err = cached.FetchCatalog(context.Background(), q)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls, "failures must reach the upstream every time")
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	fakeClock(t)

	c := newLRUCache[int](2, time.Hour)
	c.put("a", 1)
	c.put("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.get("a")
	require.True(t, ok)

	c.put("c", 3)

	_, ok = c.get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLRUCache_UpdateExistingKey(t *testing.T) {
	fakeClock(t)

	c := newLRUCache[int](2, time.Hour)
	c.put("a", 1)
	c.put("a", 2)

	v, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Len(t, c.entries, 1)
}

type countingApproachSource struct {
	calls int
	feed  domain.RawNEOFeed
}

func (m *countingApproachSource) FetchFeed(_ context.Context, _ domain.DateRange) (domain.RawNEOFeed, error) {
	m.calls++
	return m.feed, nil
}

func TestCachedApproachSource_ClampedRangesShareEntries(t *testing.T) {
	fc := fakeClock(t)

	inner := &countingApproachSource{}
	cached := NewCachedApproachSource(inner, 10, time.Hour, observability.NewMetricsForTesting())

	// Both ranges clamp to the same 7-day window, so the second is a hit.
	start := fc.Now().UTC()
	_, err := cached.FetchFeed(context.Background(), domain.DateRange{Start: start, End: start.AddDate(0, 0, 20)})
	require.NoError(t, err)
	_, err = cached.FetchFeed(context.Background(), domain.DateRange{Start: start, End: start.AddDate(0, 0, 30)})
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}
