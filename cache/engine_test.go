package cache

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

var storeConfigs = []Config{
	{Policy: PolicyFIFO},
	{Policy: PolicyLRU},
	{Policy: PolicyLFU},
	{Policy: PolicyRandom},
	{Policy: PolicyTTL, TTL: time.Hour},
	{Policy: PolicyBoundedTTL, TTLMin: time.Hour, TTLMax: 2 * time.Hour},
}

// 每种写入不需要额外参数的缓存各创建一个
func forEachStore(t *testing.T, capacity int, fn func(t *testing.T, c Store[int, int], clock *fakeClock)) {
	for _, cfg := range storeConfigs {
		t.Run(string(cfg.Policy), func(t *testing.T) {
			clock := newFakeClock()
			cfg.Capacity = capacity
			c, err := New(cfg,
				WithClock[int, int](clock.Now),
				WithRand[int, int](rand.New(rand.NewPCG(1, 2))),
			)
			require.NoError(t, err)
			fn(t, c, clock)
		})
	}
}

func fill(c Store[int, int], keys ...int) {
	for _, key := range keys {
		c.Set(key, key+1)
	}
}

func TestCache_Get(t *testing.T) {
	forEachStore(t, 6, func(t *testing.T, c Store[int, int], _ *fakeClock) {
		fill(c, 1, 2, 3, 4, 5)

		for key := 1; key <= 5; key++ {
			value, err := c.Get(key)
			require.NoError(t, err)
			assert.Equal(t, key+1, value)
		}
		_, err := c.Get(100)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, -1, c.GetOr(100, -1))
		assert.Equal(t, 2, c.GetOr(1, -1))

		value, ok := c.Peek(3)
		assert.True(t, ok)
		assert.Equal(t, 4, value)
		_, ok = c.Peek(100)
		assert.False(t, ok)
	})
}

func TestCache_Overwrite(t *testing.T) {
	forEachStore(t, 3, func(t *testing.T, c Store[int, int], _ *fakeClock) {
		fill(c, 1, 2, 3)
		c.Set(1, 10)
		c.Set(2, 20)
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, 10, c.GetOr(1, 0))
		assert.Equal(t, 20, c.GetOr(2, 0))
		assert.True(t, c.Contains(3))
	})
}

func TestCache_Delete(t *testing.T) {
	forEachStore(t, 6, func(t *testing.T, c Store[int, int], _ *fakeClock) {
		fill(c, 1, 2, 3)

		require.NoError(t, c.Delete(2))
		assert.False(t, c.Contains(2))
		assert.Equal(t, 2, c.Len())

		err := c.Delete(2)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = c.Get(2)
		assert.ErrorIs(t, err, ErrNotFound)

		// 删除后的key可以重新写入，不会触发淘汰
		c.Set(2, 3)
		assert.Equal(t, 3, c.Len())
	})
}

func TestCache_Pop(t *testing.T) {
	forEachStore(t, 6, func(t *testing.T, c Store[int, int], _ *fakeClock) {
		fill(c, 1, 2)

		value, err := c.Pop(1)
		require.NoError(t, err)
		assert.Equal(t, 2, value)
		assert.Equal(t, 1, c.Len())

		_, err = c.Pop(1)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, -1, c.PopOr(1, -1))
		assert.Equal(t, 3, c.PopOr(2, -1))
		assert.Zero(t, c.Len())
	})
}

func TestCache_PopItem(t *testing.T) {
	forEachStore(t, 6, func(t *testing.T, c Store[int, int], _ *fakeClock) {
		_, _, err := c.PopItem()
		assert.ErrorIs(t, err, ErrNotFound)

		fill(c, 1, 2, 3, 4, 5)
		key, value, err := c.PopItem()
		require.NoError(t, err)
		assert.Equal(t, key+1, value)
		assert.False(t, c.Contains(key))
		assert.Equal(t, 4, c.Len())
	})
}

func TestCache_Evict(t *testing.T) {
	forEachStore(t, 6, func(t *testing.T, c Store[int, int], _ *fakeClock) {
		_, _, err := c.Evict()
		assert.ErrorIs(t, err, ErrCacheEmpty)

		fill(c, 1, 2)
		key, _, err := c.Evict()
		require.NoError(t, err)
		assert.False(t, c.Contains(key))
		assert.Equal(t, 1, c.Len())
	})
}

func TestCache_Overflow(t *testing.T) {
	forEachStore(t, 10, func(t *testing.T, c Store[int, int], _ *fakeClock) {
		for i := 0; i < 10; i++ {
			c.Set(i, i+1)
		}
		c.Set(11, 12)
		assert.Equal(t, 10, c.Len())
		assert.Equal(t, 10, c.Cap())
		assert.True(t, c.Contains(11))
	})
}

func TestCache_OnEvicted(t *testing.T) {
	for _, cfg := range storeConfigs {
		t.Run(string(cfg.Policy), func(t *testing.T) {
			cfg.Capacity = 4
			evicted := make(map[int]int)
			c, err := New(cfg, WithOnEvicted(func(key, value int) {
				evicted[key] = value
			}))
			require.NoError(t, err)

			for i := 0; i < 10; i++ {
				c.Set(i, i*10)
			}
			assert.Len(t, evicted, 6)
			for key, value := range evicted {
				assert.Equal(t, key*10, value)
				assert.False(t, c.Contains(key))
			}

			// PopItem不调用回调
			c.PopItem()
			assert.Len(t, evicted, 6)
		})
	}
}

func TestCache_Iterate(t *testing.T) {
	forEachStore(t, 6, func(t *testing.T, c Store[int, int], _ *fakeClock) {
		fill(c, 3, 1, 2)

		assert.Equal(t, []int{3, 1, 2}, slices.Collect(c.Keys()))
		assert.Equal(t, []int{4, 2, 3}, slices.Collect(c.Values()))
		items := make(map[int]int)
		for key, value := range c.All() {
			items[key] = value
		}
		assert.Equal(t, map[int]int{1: 2, 2: 3, 3: 4}, items)

		// 可以重复遍历
		assert.Equal(t, []int{3, 1, 2}, slices.Collect(c.Keys()))

		// 遍历中删除不会出错，删除的key被跳过
		var seen []int
		for key := range c.Keys() {
			seen = append(seen, key)
			if key == 3 {
				require.NoError(t, c.Delete(1))
			}
		}
		assert.Equal(t, []int{3, 2}, seen)

		for key := range c.Keys() {
			if key == 3 {
				break
			}
		}
	})
}

func TestCache_String(t *testing.T) {
	c, err := NewLRU[int, int](6)
	require.NoError(t, err)
	assert.Equal(t, "LRU{}", c.String())
	c.Set(1, 2)
	c.Set(2, 3)
	assert.Equal(t, "LRU{1: 2, 2: 3}", c.String())
	assert.Equal(t, "LRU{1: 2, 2: 3}", fmt.Sprint(c))

	v, err := NewVolatile[string, string](6)
	require.NoError(t, err)
	v.Set("a", "b", true)
	assert.Equal(t, "Volatile{a: b}", v.String())
}

func TestCache_Clear(t *testing.T) {
	forEachStore(t, 6, func(t *testing.T, c Store[int, int], _ *fakeClock) {
		fill(c, 1, 2, 3)
		c.Clear()
		assert.Zero(t, c.Len())
		assert.False(t, c.Contains(1))
		_, _, err := c.Evict()
		assert.ErrorIs(t, err, ErrCacheEmpty)

		fill(c, 4, 5)
		assert.Equal(t, []int{4, 5}, slices.Collect(c.Keys()))
	})
}

func TestCache_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := NewLRU[int, int](capacity)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = NewVolatileLFU[int, int](capacity)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = NewVTTL[int, int](capacity)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		for _, cfg := range storeConfigs {
			cfg.Capacity = capacity
			c, err := New[int, int](cfg)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, c)
		}
	}
}

// 随机操作序列下检查不变式：Len不超过容量，且等于能Contains的key数量
func TestCache_Invariants(t *testing.T) {
	const keySpace = 20
	forEachStore(t, 8, func(t *testing.T, c Store[int, int], clock *fakeClock) {
		r := rand.New(rand.NewPCG(3, 4))
		for i := 0; i < 5000; i++ {
			key := r.IntN(keySpace)
			switch r.IntN(8) {
			case 0, 1, 2:
				c.Set(key, i)
			case 3:
				c.Get(key)
			case 4:
				err := c.Delete(key)
				if err != nil {
					require.True(t, errors.Is(err, ErrNotFound))
				}
			case 5:
				c.PopItem()
			case 6:
				c.Evict()
			case 7:
				clock.Advance(time.Duration(r.IntN(30)) * time.Minute)
			}

			n := c.Len()
			require.LessOrEqual(t, n, c.Cap())
			contained := 0
			for k := 0; k < keySpace; k++ {
				if c.Contains(k) {
					contained++
				}
			}
			require.Equal(t, n, contained)
			require.Len(t, slices.Collect(c.Keys()), n)
		}
	})
}
