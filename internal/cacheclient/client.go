package cacheclient

import "github.com/SystemBuilders/Recency/internal/cacheservice"

// Client describes a client that can be used to interact with a
// Recency cache node over HTTP. The node is expected to be started
// separately; the client only issues calls against it.
type Client interface {
	// Put stores the value under the given key on the node. The
	// written key becomes the node's most recently used entry.
	Put(key, value string) error
	// Get retrieves the value stored under the given key, refreshing
	// its recency on the node. A miss is reported as ErrKeyNotFound.
	Get(key string) (string, error)
	// Remove deletes the entry stored under the given key on the
	// node. A miss is reported as ErrKeyNotFound.
	Remove(key string) error
	// Keys returns the node's resident keys in most to least
	// recently used order.
	Keys() ([]string, error)
	// Stats returns a snapshot of the node's cache counters.
	Stats() (cacheservice.StatsResponse, error)
}
