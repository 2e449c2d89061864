package cache

// Cache describes an entity of a bounded key-value cache with a
// recency-based eviction policy.
type Cache[K comparable, V any] interface {
	// Get retrieves the value stored under the given key.
	// A successful Get makes the key the most recently used
	// entry in the cache. This function must be implemented
	// in O(1) complexity. The second return value reports
	// whether the key was resident; a miss is a normal result,
	// not an error.
	Get(key K) (V, bool)
	// Put inserts or overwrites the value stored under the given
	// key. The written key becomes the most recently used entry
	// in the cache. This function must be implemented in O(1)
	// complexity. When an insertion would exceed the capacity,
	// the least recently used entry is evicted first.
	Put(key K, value V)
	// Peek retrieves the value stored under the given key without
	// refreshing its recency.
	Peek(key K) (V, bool)
	// Remove deletes the entry stored under the given key. It
	// returns true if the entry was resident.
	Remove(key K) bool
	// Contains reports whether the key is resident without
	// refreshing its recency.
	Contains(key K) bool
	// Keys returns the resident keys in most to least recently
	// used order.
	Keys() []K
	// Capacity returns the max capacity of the cache.
	Capacity() int
	// Size returns the number of entries currently in the cache.
	Size() int
	// Purge removes all entries from the cache.
	Purge()
}

// OnEvictFunc is called with the key and value of every entry that
// leaves the cache through eviction or removal.
type OnEvictFunc[K comparable, V any] func(key K, value V)

// Stats is a point-in-time snapshot of the cache's counters.
//
// Hits counts Gets that found a resident key, Misses counts Gets
// that did not, and Evictions counts entries pushed out by capacity
// pressure. Removals and purges are not evictions.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}
