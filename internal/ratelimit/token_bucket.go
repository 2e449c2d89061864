package ratelimit

import (
	"sync"
	"time"
)

// Error provides constant error strings to the driver functions.
type Error string

func (e Error) Error() string { return string(e) }

// Constant errors.
// Rule of thumb, all errors start with a small letter and end with no full stop.
const (
	ErrInvalidTokenCount = Error("token count must be a positive integer")
	ErrInvalidInterval   = Error("refill interval must be a positive duration")
)

// TokenBucket is a fixed-window rate limiter. It holds up to capacity
// tokens; every Allow consumes one, and the bucket refills back to
// capacity once the interval has elapsed since the last refill.
//
// All methods are safe for concurrent use.
type TokenBucket struct {
	capacity   int
	tokens     int
	interval   time.Duration
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a bucket of the given capacity that refills
// every interval. Both must be positive.
func NewTokenBucket(capacity int, interval time.Duration) (*TokenBucket, error) {
	if capacity <= 0 {
		return nil, ErrInvalidTokenCount
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	tb := &TokenBucket{
		capacity: capacity,
		tokens:   capacity,
		interval: interval,
		now:      time.Now,
	}
	tb.lastRefill = tb.now()
	return tb, nil
}

// Allow consumes one token. It returns false when the bucket is
// drained and the refill interval has not yet elapsed.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if tb.now().Sub(tb.lastRefill) >= tb.interval {
		tb.tokens = tb.capacity
		tb.lastRefill = tb.now()
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Tokens returns the number of tokens currently available.
func (tb *TokenBucket) Tokens() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	return tb.tokens
}

// Capacity returns the max number of tokens the bucket holds.
func (tb *TokenBucket) Capacity() int {
	return tb.capacity
}

// SetNowFunc replaces the clock used for refill checks. Passing nil
// restores time.Now. It exists for tests.
func (tb *TokenBucket) SetNowFunc(f func() time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if f == nil {
		f = time.Now
	}
	tb.now = f
}
