// Package cache implements the bounded funko cache: LRU capacity eviction on
// top of a map plus an access-ordered doubly linked list, and age eviction
// driven by each funko's last-modified timestamp.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/madirex/funko-server/internal/core/domain"
	"github.com/madirex/funko-server/internal/metrics"
)

type entry struct {
	key   string
	funko domain.Funko
}

// FunkoCache is safe for concurrent use by many sessions. A janitor goroutine
// sweeps expired entries at a fixed interval until Shutdown is called.
type FunkoCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	index   map[string]*list.Element
	order   *list.List // front = most recently accessed

	stop     chan struct{}
	stopOnce sync.Once
	log      zerolog.Logger

	// now is swappable for expiry tests.
	now func() time.Time
}

// New builds a cache bound to maxSize entries and a ttl measured against each
// funko's UpdatedAt. The janitor runs every sweepInterval.
func New(maxSize int, ttl, sweepInterval time.Duration, log zerolog.Logger) *FunkoCache {
	c := &FunkoCache{
		maxSize: maxSize,
		ttl:     ttl,
		index:   make(map[string]*list.Element, maxSize),
		order:   list.New(),
		stop:    make(chan struct{}),
		log:     log,
		now:     time.Now,
	}
	go c.janitor(sweepInterval)
	return c
}

// Get returns the funko for key and promotes the entry to most recently used.
// Expired entries are treated as absent even before the next sweep removes
// them.
func (c *FunkoCache) Get(key string) (*domain.Funko, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		metrics.CacheMissesTotal.Inc()
		return nil, false
	}
	e := el.Value.(*entry)
	if c.expired(e) {
		metrics.CacheMissesTotal.Inc()
		return nil, false
	}
	c.order.MoveToFront(el)
	metrics.CacheHitsTotal.Inc()
	f := e.funko
	return &f, true
}

// Put inserts or replaces the entry for key. When the insert would exceed the
// configured capacity, the least recently accessed entry is evicted first.
func (c *FunkoCache) Put(key string, value domain.Funko) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		el.Value.(*entry).funko = value
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			e := oldest.Value.(*entry)
			c.log.Debug().Str("id", e.key).Msg("cache capacity eviction")
			c.order.Remove(oldest)
			delete(c.index, e.key)
			metrics.CacheEvictionsTotal.WithLabelValues("capacity").Inc()
		}
	}
	c.index[key] = c.order.PushFront(&entry{key: key, funko: value})
}

// Remove drops the entry for key, if present.
func (c *FunkoCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		c.order.Remove(el)
		delete(c.index, key)
	}
}

// Sweep removes every entry whose funko has not been modified within the ttl,
// regardless of access recency.
func (c *FunkoCache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var next *list.Element
	for el := c.order.Front(); el != nil; el = next {
		next = el.Next()
		e := el.Value.(*entry)
		if c.expired(e) {
			c.log.Debug().Str("id", e.key).Msg("cache age eviction")
			c.order.Remove(el)
			delete(c.index, e.key)
			metrics.CacheEvictionsTotal.WithLabelValues("expired").Inc()
		}
	}
}

// Shutdown stops the janitor. Safe to call more than once.
func (c *FunkoCache) Shutdown() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Len reports the current number of entries, expired or not.
func (c *FunkoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *FunkoCache) expired(e *entry) bool {
	return e.funko.UpdatedAt.Add(c.ttl).Before(c.now())
}

func (c *FunkoCache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
