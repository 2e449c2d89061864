package routing

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/SystemBuilders/Recency/internal/cacheservice"
)

// put wraps the cache Put function and creates a clean HTTP service.
func put(w http.ResponseWriter, r *http.Request, cs *cacheservice.SimpleCacheService) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req cacheservice.PutRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Key == "" {
		http.Error(w, "key must not be empty", http.StatusBadRequest)
		return
	}

	cs.Put(req.Key, req.Value)
	w.Write([]byte("value cached"))
}
