package node

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid"
	"github.com/rs/zerolog"

	"github.com/SystemBuilders/Recency/internal/ratelimit"
)

// RequestIDHeader is the response header carrying the request's ULID.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with a fresh ULID, echoes it in the
// response headers and logs the request with it.
func RequestID(log zerolog.Logger) func(http.Handler) http.Handler {
	// The monotonic entropy source is not safe for concurrent use,
	// so generation is serialized.
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
			mu.Unlock()

			w.Header().Set(RequestIDHeader, id.String())
			log.
				Debug().
				Str("request", id.String()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request received")

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit rejects requests with a 429 once the node's token bucket
// is drained for the current window.
func RateLimit(limiter *ratelimit.TokenBucket) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
