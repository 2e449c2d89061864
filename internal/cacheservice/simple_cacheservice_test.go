package cacheservice

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, capacity int) *SimpleCacheService {
	t.Helper()
	log := zerolog.New(os.Stdout).With().Logger().Level(zerolog.Disabled)
	cs, err := NewSimpleCacheService(log, capacity)
	require.NoError(t, err)
	return cs
}

func TestSimpleCacheService_New(t *testing.T) {
	r := require.New(t)

	log := zerolog.New(os.Stdout).With().Logger()
	cs, err := NewSimpleCacheService(log, 0)
	r.Error(err)
	r.Nil(cs)

	cs, err = NewSimpleCacheService(log, 4)
	r.NoError(err)
	r.Equal(4, cs.Capacity())
}

func TestSimpleCacheService_PutGet(t *testing.T) {
	r := require.New(t)

	cs := newTestService(t, 2)
	cs.Put("a", "1")
	cs.Put("b", "2")

	v, err := cs.Get("a")
	r.NoError(err)
	r.Equal("1", v)

	_, err = cs.Get("missing")
	r.ErrorIs(err, ErrKeyNotFound)
}

func TestSimpleCacheService_EvictionOrder(t *testing.T) {
	r := require.New(t)

	cs := newTestService(t, 2)
	cs.Put("a", "1")
	cs.Put("b", "2")

	// Refresh "a" so "b" is the LRU entry.
	_, err := cs.Get("a")
	r.NoError(err)

	cs.Put("c", "3")

	_, err = cs.Get("b")
	r.ErrorIs(err, ErrKeyNotFound)
	r.Equal(2, cs.Size())
	r.ElementsMatch([]string{"a", "c"}, cs.Keys())
}

func TestSimpleCacheService_PeekAndRemove(t *testing.T) {
	r := require.New(t)

	cs := newTestService(t, 2)
	cs.Put("a", "1")
	cs.Put("b", "2")

	v, err := cs.Peek("a")
	r.NoError(err)
	r.Equal("1", v)
	// Peek must not have refreshed "a".
	r.Equal([]string{"b", "a"}, cs.Keys())

	r.NoError(cs.Remove("a"))
	r.ErrorIs(cs.Remove("a"), ErrKeyNotFound)
	r.Equal(1, cs.Size())
}

func TestSimpleCacheService_Stats(t *testing.T) {
	r := require.New(t)

	cs := newTestService(t, 1)
	cs.Put("a", "1")
	_, _ = cs.Get("a")
	_, _ = cs.Get("b")
	cs.Put("c", "2") // evicts "a"

	st := cs.Stats()
	r.Equal(uint64(1), st.Hits)
	r.Equal(uint64(1), st.Misses)
	r.Equal(uint64(1), st.Evictions)
}
