package ledger

import "math/rand/v2"

// RandomSet 支持O(1)随机选取和删除的key集合
type RandomSet[K comparable] struct {
	keys []K
	// key在keys里的下标
	index map[K]int
}

func NewRandomSet[K comparable]() *RandomSet[K] {
	return &RandomSet[K]{index: make(map[K]int)}
}

// Add 添加key，已经存在返回false
func (s *RandomSet[K]) Add(key K) bool {
	if _, ok := s.index[key]; ok {
		return false
	}
	s.keys = append(s.keys, key)
	s.index[key] = len(s.keys) - 1
	return true
}

// Remove 和最后一个元素交换后截断
func (s *RandomSet[K]) Remove(key K) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}
	last := len(s.keys) - 1
	if i < last {
		s.keys[i] = s.keys[last]
		s.index[s.keys[i]] = i
	}
	var zero K
	s.keys[last] = zero
	s.keys = s.keys[:last]
	delete(s.index, key)
	return true
}

// Random 均匀随机选取一个key
func (s *RandomSet[K]) Random(r *rand.Rand) (K, bool) {
	if len(s.keys) == 0 {
		var zero K
		return zero, false
	}
	return s.keys[r.IntN(len(s.keys))], true
}

func (s *RandomSet[K]) Contains(key K) bool {
	_, ok := s.index[key]
	return ok
}

func (s *RandomSet[K]) Len() int {
	return len(s.keys)
}

// Keys 按数组顺序返回所有key
func (s *RandomSet[K]) Keys() []K {
	return append([]K(nil), s.keys...)
}
