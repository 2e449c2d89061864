package cacheservice

import "github.com/SystemBuilders/Recency/internal/cache"

// CacheService describes a key-value caching component that fronts a
// bounded recency cache. This service is a standalone component that
// can be mounted on any server component.
type CacheService interface {
	// Put stores the value under the given key. The written key
	// becomes the most recently used entry; when the cache is full,
	// storing a new key evicts the least recently used entry.
	Put(key, value string)
	// Get retrieves the value stored under the given key and
	// refreshes its recency. An error is generated only if the key
	// is not resident.
	Get(key string) (string, error)
	// Peek retrieves the value stored under the given key without
	// refreshing its recency. An error is generated only if the key
	// is not resident.
	Peek(key string) (string, error)
	// Remove deletes the entry stored under the given key. An error
	// is generated if the key is not resident.
	Remove(key string) error
	// Keys returns the resident keys in most to least recently
	// used order.
	Keys() []string
	// Stats returns a snapshot of the cache's counters.
	Stats() cache.Stats
}

// Config describes the configuration for the cache service to run on.
type Config interface {
	// IP provides the IP address where the server is intended to run.
	IP() string
	// Port provides the port where the server is supposed to run.
	Port() string
}

// PutRequest is the body of a put call to the HTTP server acting as
// a listener for the cache node.
type PutRequest struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// KeyRequest is the body of a get, peek or remove call to the HTTP
// server acting as a listener for the cache node.
type KeyRequest struct {
	Key string `json:"Key"`
}

// ValueResponse carries the value returned by a get or peek call.
type ValueResponse struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// KeysResponse carries the resident keys in recency order.
type KeysResponse struct {
	Keys []string `json:"Keys"`
}

// StatsResponse carries a snapshot of the cache's counters.
type StatsResponse struct {
	Size      int    `json:"Size"`
	Capacity  int    `json:"Capacity"`
	Hits      uint64 `json:"Hits"`
	Misses    uint64 `json:"Misses"`
	Evictions uint64 `json:"Evictions"`
}
