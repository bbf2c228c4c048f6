package cache

// Random 随机淘汰缓存
type Random[K comparable, V any] struct {
	*engine[K, V]
}

func NewRandom[K comparable, V any](capacity int, opts ...Option[K, V]) (*Random[K, V], error) {
	e, err := newEngine("Random", PolicyRandom, false, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &Random[K, V]{engine: e}, nil
}

func (c *Random[K, V]) Set(key K, value V) {
	c.set(key, value, false)
}

func (c *Random[K, V]) Equal(o *Random[K, V]) bool {
	return o != nil && c.equal(o.engine)
}

// VolatileRandom 只随机淘汰非持久的key
type VolatileRandom[K comparable, V any] struct {
	*engine[K, V]
}

func NewVolatileRandom[K comparable, V any](capacity int, opts ...Option[K, V]) (*VolatileRandom[K, V], error) {
	e, err := newEngine("VolatileRandom", PolicyRandom, true, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &VolatileRandom[K, V]{engine: e}, nil
}

func (c *VolatileRandom[K, V]) Set(key K, value V, persists bool) bool {
	return c.set(key, value, persists)
}

func (c *VolatileRandom[K, V]) Persistent(key K) bool {
	return c.persistent(key)
}

func (c *VolatileRandom[K, V]) Equal(o *VolatileRandom[K, V]) bool {
	return o != nil && c.equal(o.engine)
}
