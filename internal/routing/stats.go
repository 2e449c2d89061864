package routing

import (
	"encoding/json"
	"net/http"

	"github.com/SystemBuilders/Recency/internal/cacheservice"
)

// keys reports the resident keys in most to least recently used order.
func keys(w http.ResponseWriter, _ *http.Request, cs *cacheservice.SimpleCacheService) {
	byteData, err := json.Marshal(cacheservice.KeysResponse{Keys: cs.Keys()})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(byteData)
}

// stats reports a snapshot of the cache's counters.
func stats(w http.ResponseWriter, _ *http.Request, cs *cacheservice.SimpleCacheService) {
	st := cs.Stats()
	resp := cacheservice.StatsResponse{
		Size:      cs.Size(),
		Capacity:  cs.Capacity(),
		Hits:      st.Hits,
		Misses:    st.Misses,
		Evictions: st.Evictions,
	}

	byteData, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(byteData)
}
