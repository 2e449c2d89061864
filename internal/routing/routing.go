package routing

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SystemBuilders/Recency/internal/cacheservice"
)

// SetupRouting adds all the routes on the http server.
func SetupRouting(cs *cacheservice.SimpleCacheService, r *mux.Router) *mux.Router {
	r.HandleFunc("/put", makePutHandler(cs)).Methods(http.MethodPost)
	r.HandleFunc("/get", makeGetHandler(cs)).Methods(http.MethodPost)
	r.HandleFunc("/peek", makePeekHandler(cs)).Methods(http.MethodPost)
	r.HandleFunc("/remove", makeRemoveHandler(cs)).Methods(http.MethodPost)
	r.HandleFunc("/keys", makeKeysHandler(cs)).Methods(http.MethodGet)
	r.HandleFunc("/stats", makeStatsHandler(cs)).Methods(http.MethodGet)
	return r
}

func makePutHandler(cs *cacheservice.SimpleCacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		put(w, r, cs)
	}
}

func makeGetHandler(cs *cacheservice.SimpleCacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		get(w, r, cs)
	}
}

func makePeekHandler(cs *cacheservice.SimpleCacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		peek(w, r, cs)
	}
}

func makeRemoveHandler(cs *cacheservice.SimpleCacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remove(w, r, cs)
	}
}

func makeKeysHandler(cs *cacheservice.SimpleCacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keys(w, r, cs)
	}
}

func makeStatsHandler(cs *cacheservice.SimpleCacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats(w, r, cs)
	}
}
