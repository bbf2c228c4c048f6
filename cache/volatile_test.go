package cache

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type volatileCache interface {
	Cache[int, int]
	Set(key, value int, persists bool) bool
	Persistent(key int) bool
}

func forEachVolatile(t *testing.T, capacity int, fn func(t *testing.T, c volatileCache)) {
	clock := newFakeClock()
	opts := []Option[int, int]{
		WithClock[int, int](clock.Now),
		WithRand[int, int](rand.New(rand.NewPCG(9, 10))),
	}
	ctors := map[string]func() (volatileCache, error){
		"Volatile":       func() (volatileCache, error) { return NewVolatile(capacity, opts...) },
		"VolatileLRU":    func() (volatileCache, error) { return NewVolatileLRU(capacity, opts...) },
		"VolatileLFU":    func() (volatileCache, error) { return NewVolatileLFU(capacity, opts...) },
		"VolatileRandom": func() (volatileCache, error) { return NewVolatileRandom(capacity, opts...) },
		"VolatileTTL":    func() (volatileCache, error) { return NewVolatileTTL(capacity, time.Hour, opts...) },
	}
	for name, ctor := range ctors {
		t.Run(name, func(t *testing.T) {
			c, err := ctor()
			require.NoError(t, err)
			fn(t, c)
		})
	}
}

func TestVolatile_PersistentNeverEvicted(t *testing.T) {
	forEachVolatile(t, 4, func(t *testing.T, c volatileCache) {
		require.True(t, c.Set(1, 2, true))
		for key := 2; key <= 20; key++ {
			require.True(t, c.Set(key, key+1, false))
			assert.True(t, c.Contains(1))
		}
		for {
			key, _, err := c.Evict()
			if err != nil {
				assert.ErrorIs(t, err, ErrNoEvictable)
				break
			}
			assert.NotEqual(t, 1, key)
		}
		assert.Equal(t, 1, c.Len())
		assert.True(t, c.Persistent(1))
	})
}

func TestVolatile_AdmissionDiscards(t *testing.T) {
	forEachVolatile(t, 3, func(t *testing.T, c volatileCache) {
		for key := 1; key <= 3; key++ {
			require.True(t, c.Set(key, key+1, true))
		}
		assert.False(t, c.Set(4, 5, false))
		assert.False(t, c.Set(4, 5, true))
		assert.Equal(t, 3, c.Len())
		assert.False(t, c.Contains(4))

		// 覆盖仍然生效
		assert.True(t, c.Set(2, 30, false))
		assert.Equal(t, 30, c.GetOr(2, 0))
		// 现在有可淘汰的key
		assert.True(t, c.Set(4, 5, true))
		assert.False(t, c.Contains(2))
	})
}

func TestVolatile_Invariants(t *testing.T) {
	const keySpace = 16
	forEachVolatile(t, 6, func(t *testing.T, c volatileCache) {
		r := rand.New(rand.NewPCG(11, 12))
		persistent := make(map[int]bool)
		for i := 0; i < 3000; i++ {
			key := r.IntN(keySpace)
			switch r.IntN(6) {
			case 0, 1, 2:
				persists := r.IntN(3) == 0
				if c.Set(key, i, persists) {
					persistent[key] = persists
				}
			case 3:
				c.Get(key)
			case 4:
				if c.Delete(key) == nil {
					delete(persistent, key)
				}
			case 5:
				if key, _, err := c.PopItem(); err == nil {
					require.False(t, persistent[key])
					delete(persistent, key)
				}
			}

			n := c.Len()
			require.LessOrEqual(t, n, c.Cap())
			count := 0
			for k := 0; k < keySpace; k++ {
				if c.Contains(k) {
					count++
					require.Equal(t, persistent[k], c.Persistent(k))
				}
			}
			require.Equal(t, n, count)
		}
	})
}
