package cache

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

var _ Cache[string, int] = (*LRUCache[string, int])(nil)

// LRUCache implements Cache. It uses a linked list as the primary
// data structure along with a hash map for checking residency of an
// entry in the cache.
//
// The hash map gives O(1) lookup of a key's node and the recency list
// gives O(1) unlinking and reinsertion at the MRU position given that
// node, so every operation touches both structures together. Neither
// structure can serve alone: a map has no order and a list has no
// constant-time lookup.
//
// The capacity is fixed at construction. The cache never holds more
// than capacity entries; inserting a new key while full evicts exactly
// the current LRU entry first. Overwriting a resident key is an update,
// not an insertion, and never evicts.
//
// All methods are safe for concurrent use. A single mutex guards the
// combined map and list state. Get refreshes recency and is therefore
// a write with respect to the list, so read operations that refresh
// recency take the exclusive lock too.
type LRUCache[K comparable, V any] struct {
	capacity int
	entries  map[K]*node[K, V]
	list     recencyList[K, V]
	stats    Stats
	onEvict  OnEvictFunc[K, V]
	group    singleflight.Group
	mu       sync.RWMutex
}

// New creates a new LRUCache of the provided capacity.
// The capacity must be a positive integer and is immutable for the
// lifetime of the cache; a non-positive capacity is a precondition
// violation and construction fails.
func New[K comparable, V any](capacity int) (*LRUCache[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		entries:  make(map[K]*node[K, V], capacity),
	}, nil
}

// MustNew creates a new LRUCache of the provided capacity and panics
// if the capacity is not a positive integer.
func MustNew[K comparable, V any](capacity int) *LRUCache[K, V] {
	c, err := New[K, V](capacity)
	if err != nil {
		panic(err)
	}
	return c
}

// Get retrieves the value stored under the given key.
//
// Whenever an entry is retrieved from the cache, it is bumped to the
// MRU position in the recency list. A miss leaves the cache untouched
// and is reported through the second return value.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.list.moveToHead(n)
	return n.value, true
}

// Put inserts or overwrites the value stored under the given key.
// All insertions occur at the head of the recency list. Removal of
// the LRU is done by unlinking the tail, making place for a new node.
func (c *LRUCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	evictedKey, evictedVal, evicted := c.putLocked(key, value)
	onEvict := c.onEvict
	c.mu.Unlock()

	if evicted && onEvict != nil {
		onEvict(evictedKey, evictedVal)
	}
}

// putLocked does the map and list bookkeeping for Put. The caller
// must hold the mutex. It reports the entry evicted to make room,
// if any.
func (c *LRUCache[K, V]) putLocked(key K, value V) (evictedKey K, evictedVal V, evicted bool) {
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.list.moveToHead(n)
		return
	}

	if len(c.entries) == c.capacity {
		lru := c.list.tail
		evictedKey = lru.key
		evictedVal = lru.value
		evicted = true
		c.list.unlink(lru)
		delete(c.entries, lru.key)
		c.stats.Evictions++
	}

	n := &node[K, V]{key: key, value: value}
	c.list.pushHead(n)
	c.entries[key] = n
	return
}

// Peek retrieves the value stored under the given key without
// refreshing its recency. Peek does not count towards the hit and
// miss statistics.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// GetOrPut retrieves the value stored under the given key, or computes
// and stores it on a miss. The compute function runs outside the lock
// so that it may call back into the cache. If several goroutines race
// on the same missing key, compute may run more than once but only one
// result is kept.
func (c *LRUCache[K, V]) GetOrPut(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	// The key may have been inserted while compute was running.
	if n, ok := c.entries[key]; ok {
		c.list.moveToHead(n)
		existing := n.value
		c.mu.Unlock()
		return existing, nil
	}
	evictedKey, evictedVal, evicted := c.putLocked(key, v)
	onEvict := c.onEvict
	c.mu.Unlock()

	if evicted && onEvict != nil {
		onEvict(evictedKey, evictedVal)
	}
	return v, nil
}

// GetOrPutOnce behaves like GetOrPut except that concurrent callers
// racing on the same missing key share a single invocation of compute.
// The deduplication applies only to in-flight calls; once the value is
// resident, callers are served from the cache.
func (c *LRUCache[K, V]) GetOrPutOnce(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	result, err, _ := c.group.Do(fmt.Sprintf("%v", key), func() (interface{}, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if n, ok := c.entries[key]; ok {
			c.list.moveToHead(n)
			existing := n.value
			c.mu.Unlock()
			return existing, nil
		}
		evictedKey, evictedVal, evicted := c.putLocked(key, v)
		onEvict := c.onEvict
		c.mu.Unlock()

		if evicted && onEvict != nil {
			onEvict(evictedKey, evictedVal)
		}
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Remove deletes the entry stored under the given key. The eviction
// callback, if set, is invoked for the removed entry. Removals do not
// count towards the eviction statistics.
func (c *LRUCache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	n, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return false
	}
	removedKey := n.key
	removedVal := n.value
	onEvict := c.onEvict

	c.list.unlink(n)
	delete(c.entries, key)
	c.mu.Unlock()

	if onEvict != nil {
		onEvict(removedKey, removedVal)
	}
	return true
}

// Contains reports whether the key is resident without refreshing
// its recency.
func (c *LRUCache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.entries[key]
	return ok
}

// Keys returns the resident keys in most to least recently used order.
func (c *LRUCache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.entries))
	for n := c.list.head; n != nil; n = n.right {
		keys = append(keys, n.key)
	}
	return keys
}

// Size returns the number of entries currently in the cache.
func (c *LRUCache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Capacity returns the max capacity of the cache.
func (c *LRUCache[K, V]) Capacity() int {
	return c.capacity
}

// Purge removes all entries from the cache. The eviction callback,
// if set, is invoked for every entry that was resident.
func (c *LRUCache[K, V]) Purge() {
	c.mu.Lock()
	onEvict := c.onEvict

	var dropped []node[K, V]
	if onEvict != nil {
		dropped = make([]node[K, V], 0, len(c.entries))
		for n := c.list.head; n != nil; n = n.right {
			dropped = append(dropped, *n)
		}
	}

	c.entries = make(map[K]*node[K, V], c.capacity)
	c.list.reset()
	c.mu.Unlock()

	for _, n := range dropped {
		onEvict(n.key, n.value)
	}
}

// Stats returns a snapshot of the cache's counters.
func (c *LRUCache[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.stats
}

// OnEvict registers a callback that is invoked with the key and value
// of every entry that leaves the cache through eviction or removal.
//
// The callback runs after the cache's lock is released and may be
// called concurrently from multiple goroutines, so it must be safe
// for concurrent use.
func (c *LRUCache[K, V]) OnEvict(f OnEvictFunc[K, V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onEvict = f
}
