package forecast

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tidewise/tidewise/internal/telemetry"
)

// Cache lookup results reported to the Observer.
const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheStale = "stale"
	cacheError = "error"
)

// ttlCache memoizes one kind of upstream payload per location.
// Fetches for the same key are serialized; different keys fetch in
// parallel.
type ttlCache[T any] struct {
	kind     string
	ttl      time.Duration
	staleTTL time.Duration
	now      func() time.Time
	logger   zerolog.Logger
	observer Observer

	mu              sync.RWMutex
	entries         map[string]*cacheEntry[T]
	lastCleanup     time.Time
	cleanupInterval time.Duration
}

type cacheEntry[T any] struct {
	fetch sync.Mutex

	// Guarded by the cache's mu for writes.
	value     T
	ok        bool
	fetchedAt time.Time
	expiresAt time.Time
}

func newTTLCache[T any](kind string, s *Service) *ttlCache[T] {
	return &ttlCache[T]{
		kind:            kind,
		ttl:             s.cacheTTL,
		staleTTL:        s.staleIfErrorTTL,
		now:             s.now,
		logger:          s.logger,
		observer:        s.observer,
		entries:         make(map[string]*cacheEntry[T]),
		cleanupInterval: 5 * time.Minute,
	}
}

// get returns the cached value for key, calling fetch when it is missing or
// expired. On fetch errors a value younger than the stale window is served
// instead.
func (c *ttlCache[T]) get(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry[T]{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.fetch.Lock()
	defer e.fetch.Unlock()

	c.mu.RLock()
	value, fresh := e.value, e.ok && c.now().Before(e.expiresAt)
	c.mu.RUnlock()
	if fresh {
		c.observer.ObserveCache(c.kind, cacheHit)
		return value, nil
	}

	c.logger.Debug().
		Str("kind", c.kind).
		Str("key", key).
		Msg("fetching from upstream")

	fetchCtx, span := telemetry.StartSpan(ctx, "forecast.fetch",
		attribute.String("forecast.kind", c.kind),
		attribute.String("forecast.key", key),
	)
	v, err := fetch(fetchCtx)
	telemetry.EndSpan(span, err)
	if err != nil {
		c.logger.Error().Err(err).
			Str("kind", c.kind).
			Str("key", key).
			Msg("upstream fetch failed")

		c.mu.RLock()
		stale := e.ok && c.now().Before(e.fetchedAt.Add(c.staleTTL))
		value, fetchedAt := e.value, e.fetchedAt
		c.mu.RUnlock()
		if stale {
			c.logger.Warn().
				Str("kind", c.kind).
				Time("fetched_at", fetchedAt).
				Msg("serving stale data due to upstream error")
			c.observer.ObserveCache(c.kind, cacheStale)
			return value, nil
		}

		c.observer.ObserveCache(c.kind, cacheError)
		c.dropPlaceholder(key, e)
		var zero T
		return zero, err
	}

	now := c.now()
	c.mu.Lock()
	e.value = v
	e.ok = true
	e.fetchedAt = now
	e.expiresAt = now.Add(c.ttl)
	c.cleanupIfNeeded(now)
	c.mu.Unlock()

	c.observer.ObserveCache(c.kind, cacheMiss)
	return v, nil
}

// cleanupIfNeeded drops entries past the stale window. Callers hold mu.
func (c *ttlCache[T]) cleanupIfNeeded(now time.Time) {
	if now.Sub(c.lastCleanup) < c.cleanupInterval {
		return
	}
	c.lastCleanup = now

	expired := 0
	for key, e := range c.entries {
		if e.ok && now.After(e.fetchedAt.Add(c.staleTTL)) {
			delete(c.entries, key)
			expired++
		}
	}
	if expired > 0 {
		c.logger.Debug().
			Str("kind", c.kind).
			Int("expired_entries", expired).
			Msg("cleaned up expired cache entries")
	}
}

// dropPlaceholder removes an entry that never held a value so failed
// lookups for one-off keys do not accumulate.
func (c *ttlCache[T]) dropPlaceholder(key string, e *cacheEntry[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !e.ok && c.entries[key] == e {
		delete(c.entries, key)
	}
}

func (c *ttlCache[T]) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *ttlCache[T]) invalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

func (c *ttlCache[T]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry[T])
}

// CacheKindStats counts the entries of one cache. Entries includes keys
// whose first fetch is still in flight.
type CacheKindStats struct {
	Entries      int
	FreshEntries int
}

func (c *ttlCache[T]) stats() CacheKindStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	st := CacheKindStats{Entries: len(c.entries)}
	for _, e := range c.entries {
		if e.ok && now.Before(e.expiresAt) {
			st.FreshEntries++
		}
	}
	return st
}
