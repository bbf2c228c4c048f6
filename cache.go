package cacheing

import (
	"sync"
	"time"

	"github.com/jiaxwu/cacheing/cache"
)

// 并发安全的缓存分片，每个操作全程持有锁
type shard struct {
	mu    sync.Mutex
	store cache.Store[string, ByteView]
	now   func() time.Time
}

func (s *shard) add(key string, value ByteView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Set(key, value)
}

// 过期的值当作不存在，顺便删除
func (s *shard) get(key string) (ByteView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.store.Get(key)
	if err != nil {
		return ByteView{}, false
	}
	if v.Expired(s.now()) {
		s.store.Delete(key)
		return ByteView{}, false
	}
	return v, true
}

func (s *shard) remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(key) == nil
}

func (s *shard) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}
