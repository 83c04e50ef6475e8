package openmeteo

import (
	"context"
	"sync"
	"time"

	"github.com/parkfair/contest-engine/internal/domain"
	"github.com/parkfair/contest-engine/internal/observability"
)

// CachedLookup wraps a WeatherLookup with an in-memory LRU cache keyed by
// calendar date. Historical weather never changes, so entries have no TTL;
// capacity is the only bound.
type CachedLookup struct {
	inner   domain.WeatherLookup
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedLookup creates a cache decorator around a weather lookup.
// Metrics may be nil.
func NewCachedLookup(inner domain.WeatherLookup, maxEntries int, metrics *observability.Metrics) *CachedLookup {
	return &CachedLookup{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedLookup) HistoricalWeather(ctx context.Context, date time.Time) (domain.WeatherRecord, error) {
	key := date.UTC().Format("2006-01-02")
	if record, ok := c.cache.get(key); ok {
		c.count("hit")
		return record, nil
	}
	c.count("miss")

	start := time.Now()
	record, err := c.inner.HistoricalWeather(ctx, date)
	if c.metrics != nil {
		c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return record, err
	}
	c.cache.put(key, record)
	return record, nil
}

func (c *CachedLookup) count(result string) {
	if c.metrics != nil {
		c.metrics.WeatherCache.WithLabelValues(result).Inc()
	}
}

// lruCache is a simple thread-safe LRU cache for WeatherRecords.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.WeatherRecord
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.WeatherRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.WeatherRecord{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.WeatherRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
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

func (c *lruCache) remove(e *entry) {
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

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
