package routing

import (
	"net/http"

	"github.com/SystemBuilders/Recency/internal/cacheservice"
)

// remove wraps the cache Remove function and creates a clean HTTP service.
func remove(w http.ResponseWriter, r *http.Request, cs *cacheservice.SimpleCacheService) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}

	err := cs.Remove(key)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	w.Write([]byte("entry removed"))
}
