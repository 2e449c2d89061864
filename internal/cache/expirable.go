package cache

import (
	"sync"
	"time"
)

// expNode is a single entity of the expirable recency list.
type expNode[K comparable, V any] struct {
	key    K
	value  V
	expiry time.Time
	left   *expNode[K, V]
	right  *expNode[K, V]
}

// Expirable implements a bounded LRU cache whose entries also carry an
// absolute expiration time. The expiry is fixed when the entry is
// written; reads do not extend it. Expired entries are dropped lazily
// when accessed, or in bulk via RemoveExpired.
//
// Eviction under capacity pressure follows the same recency order as
// LRUCache and ignores expiry: the tail of the list goes first even if
// a fresher entry has already expired.
type Expirable[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	entries  map[K]*expNode[K, V]
	head     *expNode[K, V]
	tail     *expNode[K, V]
	now      func() time.Time
	onEvict  OnEvictFunc[K, V]
	mu       sync.RWMutex
}

// PutOption configures a single Put on an Expirable cache.
type PutOption func(*putOptions)

type putOptions struct {
	ttl time.Duration
}

// WithTTL overrides the cache's default TTL for the entry being
// written. A non-positive ttl falls back to the default.
func WithTTL(ttl time.Duration) PutOption {
	return func(o *putOptions) {
		o.ttl = ttl
	}
}

// NewExpirable creates a new Expirable cache of the provided capacity
// whose entries expire ttl after being written. Both the capacity and
// the TTL must be positive.
func NewExpirable[K comparable, V any](capacity int, ttl time.Duration) (*Expirable[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &Expirable[K, V]{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[K]*expNode[K, V], capacity),
		now:      time.Now,
	}, nil
}

// MustNewExpirable creates a new Expirable cache and panics if the
// capacity or TTL is not positive.
func MustNewExpirable[K comparable, V any](capacity int, ttl time.Duration) *Expirable[K, V] {
	c, err := NewExpirable[K, V](capacity, ttl)
	if err != nil {
		panic(err)
	}
	return c
}

// Get retrieves the value stored under the given key if it is resident
// and not expired. A live hit bumps the entry to the MRU position; an
// expired entry is removed on access and reported as a miss.
func (c *Expirable[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()

	var zero V
	n, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return zero, false
	}

	if c.now().After(n.expiry) {
		expiredKey := n.key
		expiredVal := n.value
		onEvict := c.onEvict
		c.unlink(n)
		delete(c.entries, key)
		c.mu.Unlock()

		if onEvict != nil {
			onEvict(expiredKey, expiredVal)
		}
		return zero, false
	}

	c.moveToHead(n)
	v := n.value
	c.mu.Unlock()
	return v, true
}

// Peek retrieves the value stored under the given key without
// refreshing its recency. Expired entries are reported as misses but
// are not removed; use RemoveExpired to purge them.
func (c *Expirable[K, V]) Peek(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	n, ok := c.entries[key]
	if !ok || c.now().After(n.expiry) {
		return zero, false
	}
	return n.value, true
}

// Put inserts or overwrites the value stored under the given key and
// stamps it with a fresh expiry. The written key becomes the MRU entry.
// When an insertion would exceed the capacity, the LRU entry is evicted
// first.
func (c *Expirable[K, V]) Put(key K, value V, opts ...PutOption) {
	var o putOptions
	for _, opt := range opts {
		opt(&o)
	}
	ttl := c.ttl
	if o.ttl > 0 {
		ttl = o.ttl
	}

	c.mu.Lock()
	var evictedKey K
	var evictedVal V
	evicted := false

	if n, ok := c.entries[key]; ok {
		n.value = value
		n.expiry = c.now().Add(ttl)
		c.moveToHead(n)
		c.mu.Unlock()
		return
	}

	if len(c.entries) == c.capacity {
		lru := c.tail
		evictedKey = lru.key
		evictedVal = lru.value
		evicted = true
		c.unlink(lru)
		delete(c.entries, lru.key)
	}

	n := &expNode[K, V]{key: key, value: value, expiry: c.now().Add(ttl)}
	c.pushHead(n)
	c.entries[key] = n
	onEvict := c.onEvict
	c.mu.Unlock()

	if evicted && onEvict != nil {
		onEvict(evictedKey, evictedVal)
	}
}

// Remove deletes the entry stored under the given key.
func (c *Expirable[K, V]) Remove(key K) bool {
	c.mu.Lock()
	n, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return false
	}
	removedKey := n.key
	removedVal := n.value
	onEvict := c.onEvict

	c.unlink(n)
	delete(c.entries, key)
	c.mu.Unlock()

	if onEvict != nil {
		onEvict(removedKey, removedVal)
	}
	return true
}

// RemoveExpired walks the cache and drops every expired entry. It
// returns the number of entries removed. The eviction callback, if
// set, is invoked for each of them.
func (c *Expirable[K, V]) RemoveExpired() int {
	c.mu.Lock()

	now := c.now()
	var droppedKeys []K
	var droppedVals []V
	for n := c.head; n != nil; {
		next := n.right
		if now.After(n.expiry) {
			droppedKeys = append(droppedKeys, n.key)
			droppedVals = append(droppedVals, n.value)
			c.unlink(n)
			delete(c.entries, n.key)
		}
		n = next
	}
	onEvict := c.onEvict
	c.mu.Unlock()

	if onEvict != nil {
		for i := range droppedKeys {
			onEvict(droppedKeys[i], droppedVals[i])
		}
	}
	return len(droppedKeys)
}

// Size returns the number of live entries in the cache. Expired but
// not yet removed entries are excluded from the count.
func (c *Expirable[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	now := c.now()
	for _, n := range c.entries {
		if !now.After(n.expiry) {
			count++
		}
	}
	return count
}

// Capacity returns the max capacity of the cache.
func (c *Expirable[K, V]) Capacity() int {
	return c.capacity
}

// Keys returns the live keys in most to least recently used order.
func (c *Expirable[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	keys := make([]K, 0, len(c.entries))
	for n := c.head; n != nil; n = n.right {
		if !now.After(n.expiry) {
			keys = append(keys, n.key)
		}
	}
	return keys
}

// OnEvict registers a callback that is invoked with the key and value
// of every entry that leaves the cache, whether by capacity pressure,
// expiry or explicit removal.
func (c *Expirable[K, V]) OnEvict(f OnEvictFunc[K, V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onEvict = f
}

// SetNowFunc replaces the clock used for expiry checks. Passing nil
// restores time.Now. It exists for tests.
func (c *Expirable[K, V]) SetNowFunc(f func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f == nil {
		f = time.Now
	}
	c.now = f
}

func (c *Expirable[K, V]) pushHead(n *expNode[K, V]) {
	n.left = nil
	n.right = c.head
	if c.head != nil {
		c.head.left = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *Expirable[K, V]) unlink(n *expNode[K, V]) {
	if n.left != nil {
		n.left.right = n.right
	} else {
		c.head = n.right
	}
	if n.right != nil {
		n.right.left = n.left
	} else {
		c.tail = n.left
	}
	n.left = nil
	n.right = nil
}

func (c *Expirable[K, V]) moveToHead(n *expNode[K, V]) {
	if c.head == n {
		return
	}
	c.unlink(n)
	c.pushHead(n)
}
