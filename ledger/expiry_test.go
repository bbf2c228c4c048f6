package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(1_000_000, 0)

func at(sec int) time.Time {
	return epoch.Add(time.Duration(sec) * time.Second)
}

func keysOf[K comparable](links []Link[K]) []K {
	keys := make([]K, len(links))
	for i, link := range links {
		keys[i] = link.Key
	}
	return keys
}

func TestExpiry_Append(t *testing.T) {
	e := NewExpiry[int]()
	e.Push(1, at(5))
	e.Push(2, at(3))
	e.Push(3, at(7))
	// 追加模式不排序
	assert.Equal(t, []int{1, 2, 3}, keysOf(e.Links()))

	// 重新设置会移动到尾部
	e.Push(1, at(9))
	assert.Equal(t, []int{2, 3, 1}, keysOf(e.Links()))
	expiry, ok := e.Expiry(1)
	require.True(t, ok)
	assert.Equal(t, at(9), expiry)
}

func TestExpiry_Sorted(t *testing.T) {
	e := NewSortedExpiry[int]()
	e.Push(1, at(2))
	e.Push(2, at(5))
	e.Push(3, at(1))
	e.Push(4, at(6))
	e.Push(5, at(3))
	assert.Equal(t, []int{3, 1, 5, 2, 4}, keysOf(e.Links()))

	// 相同过期时间排在已有节点后面
	e.Push(6, at(3))
	e.Push(7, at(1))
	assert.Equal(t, []int{3, 7, 1, 5, 6, 2, 4}, keysOf(e.Links()))
	assert.Len(t, e.rep, 7)

	e.Push(3, at(4))
	assert.Equal(t, []int{7, 1, 5, 6, 3, 2, 4}, keysOf(e.Links()))

	assert.True(t, e.Remove(6))
	assert.True(t, e.Remove(4))
	assert.False(t, e.Remove(4))
	assert.Equal(t, []int{7, 1, 5, 3, 2}, keysOf(e.Links()))
	for i, h := range e.rep {
		assert.Equal(t, e.Links()[i], e.ll.Value(h))
	}
}

func TestExpiry_Sweep(t *testing.T) {
	for name, e := range map[string]*Expiry[int]{
		"append": NewExpiry[int](),
		"sorted": NewSortedExpiry[int](),
	} {
		t.Run(name, func(t *testing.T) {
			e.Push(1, at(1))
			e.Push(2, at(2))
			e.Push(3, at(3))

			var expired []int
			n := e.Sweep(at(2), func(key int) {
				expired = append(expired, key)
			})
			assert.Equal(t, 2, n)
			assert.Equal(t, []int{1, 2}, expired)
			assert.Equal(t, 1, e.Len())
			assert.False(t, e.Contains(1))

			assert.Zero(t, e.Sweep(at(2), nil))
			front, ok := e.Front()
			require.True(t, ok)
			assert.Equal(t, 3, front.Key)
		})
	}
}

func TestExpiry_SweepStopsAtLiveHead(t *testing.T) {
	e := NewExpiry[int]()
	e.Push(1, at(10))
	e.Push(2, at(1))
	// 头部没过期，后面已经过期的也不会被移除
	assert.Zero(t, e.Sweep(at(5), nil))
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 2, e.Sweep(at(10), nil))
}
