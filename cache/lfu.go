package cache

// LFU 最不经常使用缓存，插入、访问、删除、淘汰都是O(1)
type LFU[K comparable, V any] struct {
	*engine[K, V]
}

func NewLFU[K comparable, V any](capacity int, opts ...Option[K, V]) (*LFU[K, V], error) {
	e, err := newEngine("LFU", PolicyLFU, false, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &LFU[K, V]{engine: e}, nil
}

// Set 添加数据到缓存，已经存在的key访问次数加1
func (c *LFU[K, V]) Set(key K, value V) {
	c.set(key, value, false)
}

// Frequency 访问次数，写入算一次
func (c *LFU[K, V]) Frequency(key K) (int, bool) {
	return c.policy.(*lfuPolicy[K]).freq.Frequency(key)
}

func (c *LFU[K, V]) Equal(o *LFU[K, V]) bool {
	return o != nil && c.equal(o.engine)
}

// VolatileLFU 只按LFU淘汰非持久的key
//
// key从可淘汰变为持久时移出频率账本，反过来则以频率1重新加入。
type VolatileLFU[K comparable, V any] struct {
	*engine[K, V]
}

func NewVolatileLFU[K comparable, V any](capacity int, opts ...Option[K, V]) (*VolatileLFU[K, V], error) {
	e, err := newEngine("VolatileLFU", PolicyLFU, true, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &VolatileLFU[K, V]{engine: e}, nil
}

func (c *VolatileLFU[K, V]) Set(key K, value V, persists bool) bool {
	return c.set(key, value, persists)
}

// Frequency 访问次数，持久key没有访问次数
func (c *VolatileLFU[K, V]) Frequency(key K) (int, bool) {
	return c.policy.(*lfuPolicy[K]).freq.Frequency(key)
}

func (c *VolatileLFU[K, V]) Persistent(key K) bool {
	return c.persistent(key)
}

func (c *VolatileLFU[K, V]) Equal(o *VolatileLFU[K, V]) bool {
	return o != nil && c.equal(o.engine)
}
