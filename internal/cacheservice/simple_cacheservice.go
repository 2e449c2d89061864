package cacheservice

import (
	"github.com/rs/zerolog"

	"github.com/SystemBuilders/Recency/internal/cache"
)

// SimpleConfig implements Config.
type SimpleConfig struct {
	IPAddr   string
	PortAddr string
}

// IP returns the IP address from SimpleConfig.
func (scfg *SimpleConfig) IP() string {
	return scfg.IPAddr
}

// Port returns the port from SimpleConfig.
func (scfg *SimpleConfig) Port() string {
	return scfg.PortAddr
}

// NewSimpleConfig returns a new simple configuration.
func NewSimpleConfig(IPAddr, PortAddr string) *SimpleConfig {
	return &SimpleConfig{
		IPAddr:   IPAddr,
		PortAddr: PortAddr,
	}
}

var _ CacheService = (*SimpleCacheService)(nil)

// SimpleCacheService is a caching service that implements CacheService.
// It fronts a fixed-capacity LRU cache and has an in-built logger.
// Every mutation and lookup is delegated to the cache, which owns the
// recency order and the capacity invariant.
type SimpleCacheService struct {
	log zerolog.Logger
	lru *cache.LRUCache[string, string]
}

// NewSimpleCacheService creates and returns a new cache service of the
// given capacity, ready to use. The capacity must be a positive integer.
func NewSimpleCacheService(log zerolog.Logger, capacity int) (*SimpleCacheService, error) {
	lru, err := cache.New[string, string](capacity)
	if err != nil {
		return nil, err
	}
	cs := &SimpleCacheService{
		log: log,
		lru: lru,
	}
	lru.OnEvict(func(key, _ string) {
		cs.log.
			Debug().
			Str("key", key).
			Msg("evicted")
	})
	return cs, nil
}

// Put stores the value under the given key, making it the most
// recently used entry in the cache.
func (cs *SimpleCacheService) Put(key, value string) {
	cs.lru.Put(key, value)
	cs.log.
		Debug().
		Str("key", key).
		Msg("put")
}

// Get retrieves the value stored under the given key and refreshes
// its recency. A miss is reported as ErrKeyNotFound.
func (cs *SimpleCacheService) Get(key string) (string, error) {
	v, ok := cs.lru.Get(key)
	if !ok {
		cs.log.
			Debug().
			Str("key", key).
			Msg("get miss")
		return "", ErrKeyNotFound
	}
	cs.log.
		Debug().
		Str("key", key).
		Msg("get hit")
	return v, nil
}

// Peek retrieves the value stored under the given key without
// refreshing its recency. A miss is reported as ErrKeyNotFound.
func (cs *SimpleCacheService) Peek(key string) (string, error) {
	v, ok := cs.lru.Peek(key)
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Remove deletes the entry stored under the given key.
func (cs *SimpleCacheService) Remove(key string) error {
	if !cs.lru.Remove(key) {
		cs.log.
			Debug().
			Str("key", key).
			Msg("can't remove, key isn't resident")
		return ErrKeyNotFound
	}
	cs.log.
		Debug().
		Str("key", key).
		Msg("removed")
	return nil
}

// Keys returns the resident keys in most to least recently used order.
func (cs *SimpleCacheService) Keys() []string {
	return cs.lru.Keys()
}

// Stats returns a snapshot of the cache's counters.
func (cs *SimpleCacheService) Stats() cache.Stats {
	return cs.lru.Stats()
}

// Size returns the number of entries currently in the cache.
func (cs *SimpleCacheService) Size() int {
	return cs.lru.Size()
}

// Capacity returns the max capacity of the cache.
func (cs *SimpleCacheService) Capacity() int {
	return cs.lru.Capacity()
}
