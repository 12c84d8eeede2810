package cache

import "sync"

// Cache is a generic thread-safe memoization cache.
// A limit of 0 means the cache never evicts; this is the mode stacks use
// for path-to-texture memoization, where entries stay valid for the
// lifetime of the process. With a positive limit the least recently used
// entries are evicted once the limit is exceeded.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
	limit   int
	tick    int64 // Monotonic access counter
	hits    uint64
	misses  uint64
}

// entry holds a cached value with its access time.
type entry[V any] struct {
	value V
	atime int64 // Access time (tick value)
}

// New creates a new cache with the given entry limit.
// A limit of 0 means unbounded.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*entry[V]),
		limit:   limit,
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	c.tick++
	e.atime = c.tick

	return e.value, true
}

// Set stores a value in the cache.
// If the cache exceeds its limit after insertion, the least recently
// used entries are evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(key, value)
}

// GetOrCreate returns the cached value for key, or calls create to
// produce it. The result of a successful create is cached; a failed
// create caches nothing, so the next call retries.
//
// create runs under the cache lock so concurrent callers never resolve
// the same key twice.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits++
		c.tick++
		e.atime = c.tick
		return e.value, nil
	}
	c.misses++

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}

	c.store(key, value)
	return value, nil
}

// store inserts a value and evicts if over the limit.
// Caller must hold c.mu.
func (c *Cache[K, V]) store(key K, value V) {
	c.tick++
	c.entries[key] = &entry[V]{
		value: value,
		atime: c.tick,
	}

	if c.limit > 0 && len(c.entries) > c.limit {
		c.evictOldest()
	}
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		return true
	}
	return false
}

// Clear removes all entries from the cache.
// Hit and miss counters are preserved.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[V])
	c.tick = 0
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Limit returns the entry limit of the cache (0 = unbounded).
func (c *Cache[K, V]) Limit() int {
	return c.limit
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:    len(c.entries),
		Limit:  c.limit,
		Hits:   c.hits,
		Misses: c.misses,
	}
}

// evictOldest removes least recently used entries until within the limit.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	for len(c.entries) > c.limit {
		var oldest K
		var oldestAtime int64
		first := true
		for key, e := range c.entries {
			if first || e.atime < oldestAtime {
				oldest = key
				oldestAtime = e.atime
				first = false
			}
		}
		delete(c.entries, oldest)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Limit is the entry limit (0 = unbounded).
	Limit int
	// Hits is the number of lookups answered from the cache.
	Hits uint64
	// Misses is the number of lookups that required resolution.
	Misses uint64
}

// HitRate returns the fraction of lookups answered from the cache,
// from 0.0 to 1.0. Returns 0 when no lookups have happened.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
