package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSharded_New(t *testing.T) {
	tests := map[string]struct {
		capacity   int
		shardCount int
		wantErr    error
		wantCap    int
	}{
		"even split": {
			capacity:   32,
			shardCount: 4,
			wantCap:    32,
		},
		"uneven split": {
			capacity:   10,
			shardCount: 3,
			wantCap:    10,
		},
		"capacity below shard count rounds up": {
			capacity:   2,
			shardCount: 4,
			wantCap:    2,
		},
		"zero capacity": {
			capacity:   0,
			shardCount: 4,
			wantErr:    ErrInvalidCapacity,
		},
		"zero shard count": {
			capacity:   8,
			shardCount: 0,
			wantErr:    ErrInvalidShardCount,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := require.New(t)

			s, err := NewShardedWithCount[string, int](tc.capacity, tc.shardCount)
			if tc.wantErr != nil {
				r.ErrorIs(err, tc.wantErr)
				r.Nil(s)
				return
			}
			r.NoError(err)
			r.Equal(tc.wantCap, s.Capacity())
			r.Equal(tc.shardCount, s.ShardCount())

			// Per-shard capacities add up to at least the requested total.
			sum := 0
			for _, shard := range s.shards {
				r.GreaterOrEqual(shard.Capacity(), 1)
				sum += shard.Capacity()
			}
			r.GreaterOrEqual(sum, tc.wantCap)
		})
	}
}

func TestSharded_DefaultShardCount(t *testing.T) {
	r := require.New(t)

	s := MustNewSharded[string, int](64)
	r.Equal(DefaultShardCount, s.ShardCount())
}

func TestSharded_GetPut(t *testing.T) {
	r := require.New(t)

	// Each shard can hold the whole key set, so hash skew can never
	// force an eviction in this test.
	s, err := NewShardedWithCount[string, int](800, 8)
	r.NoError(err)

	for i := 0; i < 100; i++ {
		s.Put(fmt.Sprintf("key-%d", i), i)
	}

	for i := 0; i < 100; i++ {
		v, ok := s.Get(fmt.Sprintf("key-%d", i))
		r.True(ok)
		r.Equal(i, v)
	}
	r.Equal(100, s.Size())
	r.Len(s.Keys(), 100)
}

func TestSharded_SameKeyAlwaysSameShard(t *testing.T) {
	r := require.New(t)

	s, err := NewShardedWithCount[string, int](32, 4)
	r.NoError(err)

	// Overwrites must land on the shard of the first Put, never duplicate.
	for i := 0; i < 10; i++ {
		s.Put("stable", i)
	}
	r.Equal(1, s.Size())
	v, ok := s.Get("stable")
	r.True(ok)
	r.Equal(9, v)
}

func TestSharded_RemoveAndPurge(t *testing.T) {
	r := require.New(t)

	s, err := NewShardedWithCount[string, int](32, 4)
	r.NoError(err)

	s.Put("a", 1)
	s.Put("b", 2)

	r.True(s.Remove("a"))
	r.False(s.Remove("a"))
	r.False(s.Contains("a"))

	s.Purge()
	r.Equal(0, s.Size())
}

func TestSharded_Stats(t *testing.T) {
	r := require.New(t)

	s, err := NewShardedWithCount[string, int](32, 4)
	r.NoError(err)

	s.Put("a", 1)
	s.Get("a")
	s.Get("missing")

	st := s.Stats()
	r.Equal(uint64(1), st.Hits)
	r.Equal(uint64(1), st.Misses)
}

func TestSharded_ConcurrentAccess(t *testing.T) {
	r := require.New(t)

	s, err := NewShardedWithCount[int, int](256, 16)
	r.NoError(err)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				k := (seed*131 + i) % 512
				s.Put(k, k)
				s.Get(k)
			}
		}(g)
	}
	wg.Wait()

	r.LessOrEqual(s.Size(), s.Capacity())
	for _, k := range s.Keys() {
		v, ok := s.Peek(k)
		r.True(ok)
		r.Equal(k, v)
	}
}
