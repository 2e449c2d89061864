package cache

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
)

// DefaultShardCount is the number of shards used by NewSharded.
const DefaultShardCount = 16

// Sharded implements Cache by distributing keys across several
// independent LRUCache shards. Each shard carries its own lock, so
// operations on different shards never contend. The recency order is
// kept per shard; there is no global LRU order across shards.
type Sharded[K comparable, V any] struct {
	shards   []*LRUCache[K, V]
	seed     maphash.Seed
	capacity int
}

var _ Cache[string, int] = (*Sharded[string, int])(nil)

// NewSharded creates a sharded cache with the given total capacity
// spread evenly over DefaultShardCount shards.
func NewSharded[K comparable, V any](capacity int) (*Sharded[K, V], error) {
	return NewShardedWithCount[K, V](capacity, DefaultShardCount)
}

// NewShardedWithCount creates a sharded cache with the given total
// capacity and shard count. Both must be positive. Every shard gets at
// least capacity one, so a capacity smaller than the shard count is
// rounded up.
func NewShardedWithCount[K comparable, V any](capacity, shardCount int) (*Sharded[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if shardCount <= 0 {
		return nil, ErrInvalidShardCount
	}

	perShard := capacity / shardCount
	remainder := capacity % shardCount
	if perShard < 1 {
		perShard = 1
		remainder = 0
	}

	shards := make([]*LRUCache[K, V], shardCount)
	for i := range shards {
		shardCap := perShard
		if i < remainder {
			shardCap++
		}
		shard, err := New[K, V](shardCap)
		if err != nil {
			return nil, err
		}
		shards[i] = shard
	}

	return &Sharded[K, V]{
		shards:   shards,
		seed:     maphash.MakeSeed(),
		capacity: capacity,
	}, nil
}

// MustNewSharded creates a sharded cache and panics if the capacity
// is not positive.
func MustNewSharded[K comparable, V any](capacity int) *Sharded[K, V] {
	c, err := NewSharded[K, V](capacity)
	if err != nil {
		panic(err)
	}
	return c
}

// shard returns the shard responsible for the given key.
func (s *Sharded[K, V]) shard(key K) *LRUCache[K, V] {
	var h maphash.Hash
	h.SetSeed(s.seed)

	// Common key types are hashed from their raw bytes; anything else
	// goes through fmt at the cost of an allocation.
	var buf [8]byte
	switch k := any(key).(type) {
	case string:
		h.WriteString(k)
	case int:
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(k)))
		h.Write(buf[:])
	case int64:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
		h.Write(buf[:])
	case uint64:
		binary.LittleEndian.PutUint64(buf[:], k)
		h.Write(buf[:])
	default:
		h.WriteString(fmt.Sprint(key))
	}

	return s.shards[h.Sum64()%uint64(len(s.shards))]
}

// Get retrieves the value stored under the given key, refreshing its
// recency within its shard.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shard(key).Get(key)
}

// Put inserts or overwrites the value stored under the given key.
// Capacity pressure is resolved within the key's shard.
func (s *Sharded[K, V]) Put(key K, value V) {
	s.shard(key).Put(key, value)
}

// Peek retrieves the value stored under the given key without
// refreshing its recency.
func (s *Sharded[K, V]) Peek(key K) (V, bool) {
	return s.shard(key).Peek(key)
}

// Remove deletes the entry stored under the given key.
func (s *Sharded[K, V]) Remove(key K) bool {
	return s.shard(key).Remove(key)
}

// Contains reports whether the key is resident.
func (s *Sharded[K, V]) Contains(key K) bool {
	return s.shard(key).Contains(key)
}

// Keys returns the resident keys, shard by shard, each shard in most
// to least recently used order.
func (s *Sharded[K, V]) Keys() []K {
	keys := make([]K, 0, s.Size())
	for _, shard := range s.shards {
		keys = append(keys, shard.Keys()...)
	}
	return keys
}

// Size returns the number of entries across all shards.
func (s *Sharded[K, V]) Size() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Size()
	}
	return total
}

// Capacity returns the total capacity across all shards.
func (s *Sharded[K, V]) Capacity() int {
	return s.capacity
}

// ShardCount returns the number of shards.
func (s *Sharded[K, V]) ShardCount() int {
	return len(s.shards)
}

// Purge removes all entries from all shards.
func (s *Sharded[K, V]) Purge() {
	for _, shard := range s.shards {
		shard.Purge()
	}
}

// Stats returns the summed counters of all shards.
func (s *Sharded[K, V]) Stats() Stats {
	var total Stats
	for _, shard := range s.shards {
		st := shard.Stats()
		total.Hits += st.Hits
		total.Misses += st.Misses
		total.Evictions += st.Evictions
	}
	return total
}

// OnEvict registers the callback on every shard.
func (s *Sharded[K, V]) OnEvict(f OnEvictFunc[K, V]) {
	for _, shard := range s.shards {
		shard.OnEvict(f)
	}
}
