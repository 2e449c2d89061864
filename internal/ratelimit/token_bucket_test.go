package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenBucket_New(t *testing.T) {
	tests := map[string]struct {
		capacity int
		interval time.Duration
		wantErr  error
	}{
		"valid":             {capacity: 5, interval: time.Second},
		"zero capacity":     {capacity: 0, interval: time.Second, wantErr: ErrInvalidTokenCount},
		"negative capacity": {capacity: -1, interval: time.Second, wantErr: ErrInvalidTokenCount},
		"zero interval":     {capacity: 5, interval: 0, wantErr: ErrInvalidInterval},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := require.New(t)

			tb, err := NewTokenBucket(tc.capacity, tc.interval)
			if tc.wantErr != nil {
				r.ErrorIs(err, tc.wantErr)
				r.Nil(tb)
			} else {
				r.NoError(err)
				r.Equal(tc.capacity, tb.Capacity())
				r.Equal(tc.capacity, tb.Tokens())
			}
		})
	}
}

func TestTokenBucket_DrainAndDeny(t *testing.T) {
	r := require.New(t)

	tb, err := NewTokenBucket(3, time.Minute)
	r.NoError(err)

	for i := 0; i < 3; i++ {
		r.True(tb.Allow())
	}
	r.False(tb.Allow())
	r.Equal(0, tb.Tokens())
}

func TestTokenBucket_RefillAfterInterval(t *testing.T) {
	r := require.New(t)

	tb, err := NewTokenBucket(2, time.Minute)
	r.NoError(err)

	// The fake clock starts where the real one left off so the refill
	// marker taken at construction stays in the past.
	current := time.Now()
	tb.SetNowFunc(func() time.Time { return current })
	tb.Allow()
	tb.Allow()
	r.False(tb.Allow())

	current = current.Add(30 * time.Second)
	r.False(tb.Allow())

	current = current.Add(31 * time.Second)
	r.True(tb.Allow())
	r.Equal(1, tb.Tokens())
}
