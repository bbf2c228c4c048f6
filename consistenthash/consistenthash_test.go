package consistenthash

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing_Get(t *testing.T) {
	ring := New(3, func(key []byte) uint32 {
		i, _ := strconv.Atoi(string(key))
		return uint32(i)
	})
	assert.Equal(t, "", ring.Get("1"))

	// 2, 4, 6, 12, 14, 16, 22, 24, 26
	ring.Add("6", "4", "2")
	assert.Equal(t, 9, ring.Len())

	testCases := map[string]string{
		"2":  "2",
		"11": "2",
		"23": "4",
		"27": "2",
	}
	for k, v := range testCases {
		assert.Equal(t, v, ring.Get(k), "key %s", k)
	}

	// 增加 8, 18, 28
	ring.Add("8")
	testCases["27"] = "8"
	for k, v := range testCases {
		assert.Equal(t, v, ring.Get(k), "key %s", k)
	}

	// 重复添加不会产生重复的虚拟节点
	ring.Add("8")
	assert.Equal(t, 12, ring.Len())
}

func TestRing_Distribution(t *testing.T) {
	ring := New(50, nil)
	ring.Add("0", "1", "2", "3")

	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		counts[ring.Get("key"+strconv.Itoa(i))]++
	}
	assert.Len(t, counts, 4)
	for node, n := range counts {
		assert.Greater(t, n, 500, "node %s", node)
	}
}
