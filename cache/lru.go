package cache

// 缓存算法对比：
// FIFO：先进先出，只看写入顺序。
// LRU：最近最少使用。它很综合，如果数据最近很少被使用，那么就会被淘汰。它的实现很简单，使用map+双向链表。
// LFU：最不经常使用。它根据访问次数来决定是否被淘汰，可能会存在某个一段时间很热的key在另外一段时间不那么热，却由于积累的访问次数过大而无法被淘汰。
// Random：随机淘汰，实现最简单，不需要维护顺序。

// LRU 最近最少使用缓存
type LRU[K comparable, V any] struct {
	*engine[K, V]
}

func NewLRU[K comparable, V any](capacity int, opts ...Option[K, V]) (*LRU[K, V], error) {
	e, err := newEngine("LRU", PolicyLRU, false, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{engine: e}, nil
}

// Set 添加数据到缓存，已经存在则更新值并移动到最近使用
func (c *LRU[K, V]) Set(key K, value V) {
	c.set(key, value, false)
}

// Equal 内部状态完全相同
func (c *LRU[K, V]) Equal(o *LRU[K, V]) bool {
	return o != nil && c.equal(o.engine)
}

// VolatileLRU 只按LRU淘汰非持久的key
type VolatileLRU[K comparable, V any] struct {
	*engine[K, V]
}

func NewVolatileLRU[K comparable, V any](capacity int, opts ...Option[K, V]) (*VolatileLRU[K, V], error) {
	e, err := newEngine("VolatileLRU", PolicyLRU, true, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &VolatileLRU[K, V]{engine: e}, nil
}

// Set 添加数据到缓存，persists为true的key不会被淘汰
// 容量满且没有可淘汰的key时丢弃本次写入，返回false
func (c *VolatileLRU[K, V]) Set(key K, value V, persists bool) bool {
	return c.set(key, value, persists)
}

// Persistent 是否是持久key
func (c *VolatileLRU[K, V]) Persistent(key K) bool {
	return c.persistent(key)
}

func (c *VolatileLRU[K, V]) Equal(o *VolatileLRU[K, V]) bool {
	return o != nil && c.equal(o.engine)
}
