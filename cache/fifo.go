package cache

// FIFO 淘汰最早写入的key，覆盖不改变顺序
type FIFO[K comparable, V any] struct {
	*engine[K, V]
}

func NewFIFO[K comparable, V any](capacity int, opts ...Option[K, V]) (*FIFO[K, V], error) {
	e, err := newEngine("FIFO", PolicyFIFO, false, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &FIFO[K, V]{engine: e}, nil
}

func (c *FIFO[K, V]) Set(key K, value V) {
	c.set(key, value, false)
}

func (c *FIFO[K, V]) Equal(o *FIFO[K, V]) bool {
	return o != nil && c.equal(o.engine)
}

// Volatile 淘汰最早成为可淘汰的非持久key
type Volatile[K comparable, V any] struct {
	*engine[K, V]
}

func NewVolatile[K comparable, V any](capacity int, opts ...Option[K, V]) (*Volatile[K, V], error) {
	e, err := newEngine("Volatile", PolicyFIFO, true, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &Volatile[K, V]{engine: e}, nil
}

// Set 添加数据到缓存，容量满且没有可淘汰的key时丢弃本次写入
func (c *Volatile[K, V]) Set(key K, value V, persists bool) bool {
	return c.set(key, value, persists)
}

func (c *Volatile[K, V]) Persistent(key K) bool {
	return c.persistent(key)
}

func (c *Volatile[K, V]) Equal(o *Volatile[K, V]) bool {
	return o != nil && c.equal(o.engine)
}
