package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
	"github.com/orbitdeck/space-data-pipeline/internal/observability"
)

// Catalog and close-approach data change slowly, so successful upstream
// responses are cached per query for a bounded TTL. Failures are never
// cached: the next request gets a fresh shot at the upstream before the
// pipeline falls back.

// CachedCatalogSource wraps a CatalogSource with an in-memory TTL+LRU cache.
type CachedCatalogSource struct {
	inner   CatalogSource
	cache   *lruCache[[]domain.RawCatalogRecord]
	metrics *observability.Metrics
}

// NewCachedCatalogSource creates a cache decorator around a catalog source.
func NewCachedCatalogSource(inner CatalogSource, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedCatalogSource {
	return &CachedCatalogSource{
		inner:   inner,
		cache:   newLRUCache[[]domain.RawCatalogRecord](maxEntries, ttl),
		metrics: metrics,
	}
}

func (c *CachedCatalogSource) FetchCatalog(ctx context.Context, q domain.CatalogQuery) ([]domain.RawCatalogRecord, error) {
	key := fmt.Sprintf("cat:%s|%s|%t|%d", q.ObjectType, q.Country, q.ActiveOnly, q.Limit)
	if records, ok := c.cache.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("catalog", "hit").Inc()
		return records, nil
	}
	c.metrics.CacheLookups.WithLabelValues("catalog", "miss").Inc()

	records, err := c.inner.FetchCatalog(ctx, q)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, records)
	return records, nil
}

// CachedApproachSource wraps an ApproachSource with the same cache policy.
type CachedApproachSource struct {
	inner   ApproachSource
	cache   *lruCache[domain.RawNEOFeed]
	metrics *observability.Metrics
}

// NewCachedApproachSource creates a cache decorator around an approach source.
func NewCachedApproachSource(inner ApproachSource, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedApproachSource {
	return &CachedApproachSource{
		inner:   inner,
		cache:   newLRUCache[domain.RawNEOFeed](maxEntries, ttl),
		metrics: metrics,
	}
}

func (c *CachedApproachSource) FetchFeed(ctx context.Context, r domain.DateRange) (domain.RawNEOFeed, error) {
	r = r.Clamp(domain.Clock().Now().UTC())
	key := fmt.Sprintf("neo:%s|%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	if feed, ok := c.cache.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("neo", "hit").Inc()
		return feed, nil
	}
	c.metrics.CacheLookups.WithLabelValues("neo", "miss").Inc()

	feed, err := c.inner.FetchFeed(ctx, r)
	if err != nil {
		return domain.RawNEOFeed{}, err
	}
	c.cache.put(key, feed)
	return feed, nil
}

// lruCache is a simple thread-safe LRU cache with per-entry TTL expiry.
// Expiry uses the domain clock so tests can advance time deterministically.
type lruCache[V any] struct {
	maxEntries int
	ttl        time.Duration
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

func newLRUCache[V any](maxEntries int, ttl time.Duration) *lruCache[V] {
	return &lruCache[V]{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if domain.Clock().Now().After(e.expiresAt) {
		delete(c.entries, e.key)
		c.remove(e)
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := domain.Clock().Now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
