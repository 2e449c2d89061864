package routing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/SystemBuilders/Recency/internal/cacheservice"
)

// get wraps the cache Get function and creates a clean HTTP service.
// A miss is answered with a 404; it is an expected outcome, not a
// server fault.
func get(w http.ResponseWriter, r *http.Request, cs *cacheservice.SimpleCacheService) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}

	value, err := cs.Get(key)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeValue(w, key, value)
}

// peek wraps the cache Peek function. Unlike get, it leaves the
// recency order untouched.
func peek(w http.ResponseWriter, r *http.Request, cs *cacheservice.SimpleCacheService) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}

	value, err := cs.Peek(key)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeValue(w, key, value)
}

func decodeKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}

	var req cacheservice.KeyRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}

	if req.Key == "" {
		http.Error(w, "key must not be empty", http.StatusBadRequest)
		return "", false
	}
	return req.Key, true
}

func writeValue(w http.ResponseWriter, key, value string) {
	byteData, err := json.Marshal(cacheservice.ValueResponse{Key: key, Value: value})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(byteData)
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, cacheservice.ErrKeyNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
