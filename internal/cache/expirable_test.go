package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock steps time manually so expiry tests are deterministic.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time { return f.current }

func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func newExpirableWithClock(t *testing.T, capacity int, ttl time.Duration) (*Expirable[string, int], *fakeClock) {
	t.Helper()
	c, err := NewExpirable[string, int](capacity, ttl)
	require.NoError(t, err)
	clk := &fakeClock{current: time.Unix(1700000000, 0)}
	c.SetNowFunc(clk.now)
	return c, clk
}

func TestExpirable_New(t *testing.T) {
	tests := map[string]struct {
		capacity int
		ttl      time.Duration
		wantErr  error
	}{
		"valid":             {capacity: 3, ttl: time.Minute},
		"zero capacity":     {capacity: 0, ttl: time.Minute, wantErr: ErrInvalidCapacity},
		"negative capacity": {capacity: -1, ttl: time.Minute, wantErr: ErrInvalidCapacity},
		"zero ttl":          {capacity: 3, ttl: 0, wantErr: ErrInvalidTTL},
		"negative ttl":      {capacity: 3, ttl: -time.Second, wantErr: ErrInvalidTTL},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := require.New(t)

			c, err := NewExpirable[string, int](tc.capacity, tc.ttl)
			if tc.wantErr != nil {
				r.ErrorIs(err, tc.wantErr)
				r.Nil(c)
			} else {
				r.NoError(err)
				r.Equal(tc.capacity, c.Capacity())
			}
		})
	}
}

func TestExpirable_GetBeforeAndAfterExpiry(t *testing.T) {
	r := require.New(t)

	c, clk := newExpirableWithClock(t, 3, time.Minute)
	c.Put("a", 1)

	v, ok := c.Get("a")
	r.True(ok)
	r.Equal(1, v)

	clk.advance(2 * time.Minute)

	_, ok = c.Get("a")
	r.False(ok)
	// Expired entries are removed on access.
	r.Equal(0, len(c.entries))
}

func TestExpirable_PerEntryTTL(t *testing.T) {
	r := require.New(t)

	c, clk := newExpirableWithClock(t, 3, time.Minute)
	c.Put("short", 1, WithTTL(10*time.Second))
	c.Put("long", 2, WithTTL(time.Hour))
	c.Put("default", 3)

	clk.advance(30 * time.Second)

	_, ok := c.Get("short")
	r.False(ok)
	_, ok = c.Get("long")
	r.True(ok)
	_, ok = c.Get("default")
	r.True(ok)
}

func TestExpirable_OverwriteRefreshesExpiry(t *testing.T) {
	r := require.New(t)

	c, clk := newExpirableWithClock(t, 3, time.Minute)
	c.Put("a", 1)

	clk.advance(45 * time.Second)
	c.Put("a", 2)

	clk.advance(45 * time.Second)
	v, ok := c.Get("a")
	r.True(ok)
	r.Equal(2, v)
}

func TestExpirable_EvictionFollowsRecency(t *testing.T) {
	r := require.New(t)

	c, _ := newExpirableWithClock(t, 2, time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3)

	_, ok := c.Peek("b")
	r.False(ok)
	_, ok = c.Peek("a")
	r.True(ok)
	_, ok = c.Peek("c")
	r.True(ok)
}

func TestExpirable_RemoveExpired(t *testing.T) {
	r := require.New(t)

	c, clk := newExpirableWithClock(t, 5, time.Minute)

	var dropped []string
	c.OnEvict(func(k string, _ int) {
		dropped = append(dropped, k)
	})

	c.Put("a", 1, WithTTL(10*time.Second))
	c.Put("b", 2, WithTTL(10*time.Second))
	c.Put("c", 3, WithTTL(time.Hour))

	clk.advance(time.Minute)

	r.Equal(2, c.RemoveExpired())
	r.ElementsMatch([]string{"a", "b"}, dropped)
	r.Equal(1, c.Size())
	r.Equal([]string{"c"}, c.Keys())
}

func TestExpirable_SizeExcludesExpired(t *testing.T) {
	r := require.New(t)

	c, clk := newExpirableWithClock(t, 5, time.Minute)
	c.Put("a", 1)
	c.Put("b", 2, WithTTL(time.Hour))
	r.Equal(2, c.Size())

	clk.advance(10 * time.Minute)
	r.Equal(1, c.Size())
	r.Equal([]string{"b"}, c.Keys())
}

func TestExpirable_PeekDoesNotRemoveExpired(t *testing.T) {
	r := require.New(t)

	c, clk := newExpirableWithClock(t, 3, time.Minute)
	c.Put("a", 1)
	clk.advance(2 * time.Minute)

	_, ok := c.Peek("a")
	r.False(ok)
	// Still resident until a Get or RemoveExpired drops it.
	r.Equal(1, len(c.entries))
}

func TestExpirable_Remove(t *testing.T) {
	r := require.New(t)

	c, _ := newExpirableWithClock(t, 3, time.Minute)
	c.Put("a", 1)

	r.True(c.Remove("a"))
	r.False(c.Remove("a"))
	r.Equal(0, c.Size())
}
