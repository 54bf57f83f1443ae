package cache

import (
	"sync"
	"time"
)

// Entry is a cached value and the moment it was stored.
type Entry[T any] struct {
	Value    T
	StoredAt time.Time
}

// TTL memoizes values per key for a fixed window after they are stored.
// It never evicts on its own; expired entries are dropped when read.
type TTL[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	expire  bool
	now     func() time.Time
	gen     uint64
	entries map[string]Entry[T]
}

// Option configures a TTL cache.
type Option func(*options)

type options struct {
	now      func() time.Time
	noExpiry bool
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithoutExpiry keeps entries until they are deleted. The ttl is still
// reported by TTL.
func WithoutExpiry() Option {
	return func(o *options) { o.noExpiry = true }
}

// NewTTL creates a cache whose entries live for ttl.
func NewTTL[T any](ttl time.Duration, opts ...Option) *TTL[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTL[T]{
		ttl:     ttl,
		expire:  !o.noExpiry,
		now:     o.now,
		entries: make(map[string]Entry[T]),
	}
}

// Get returns the value for key if it was stored less than ttl ago.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.expired(e) {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.Value, true
}

// Set stores value under key, stamped with the current time.
func (c *TTL[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry[T]{Value: value, StoredAt: c.now()}
}

// Generation changes on every Delete and Invalidate. Read it before a
// fetch and pass it to SetIfCurrent so a fetch that raced an invalidation
// is not stored.
func (c *TTL[T]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// SetIfCurrent stores value only if no Delete or Invalidate happened since
// gen was read. It reports whether the value was stored.
func (c *TTL[T]) SetIfCurrent(key string, value T, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false
	}
	c.entries[key] = Entry[T]{Value: value, StoredAt: c.now()}
	return true
}

// Delete drops key.
func (c *TTL[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	delete(c.entries, key)
}

// Invalidate drops every key.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	clear(c.entries)
}

// Len reports how many entries are held, expired or not.
func (c *TTL[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// TTL returns the configured lifetime.
func (c *TTL[T]) TTL() time.Duration { return c.ttl }

// Snapshot copies every unexpired entry.
func (c *TTL[T]) Snapshot() map[string]Entry[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]Entry[T], len(c.entries))
	for k, e := range c.entries {
		if !c.expired(e) {
			out[k] = e
		}
	}
	return out
}

// Load adds entries keeping their original timestamps. Entries already
// expired are skipped; the number loaded is returned.
func (c *TTL[T]) Load(entries map[string]Entry[T]) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range entries {
		if c.expired(e) {
			continue
		}
		c.entries[k] = e
		n++
	}
	return n
}

func (c *TTL[T]) expired(e Entry[T]) bool {
	return c.expire && c.now().Sub(e.StoredAt) >= c.ttl
}
