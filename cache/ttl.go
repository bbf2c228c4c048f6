package cache

import (
	"fmt"
	"time"

	"github.com/jiaxwu/cacheing/ledger"
)

// 过期时间系列缓存：每次操作前先从过期链表头部开始清理过期的key，
// 过期不算淘汰，不调用淘汰回调。容量满时按LRU淘汰，同时删除过期链表节点。

// TTL 固定过期时间缓存
type TTL[K comparable, V any] struct {
	*engine[K, V]
	ttl time.Duration
}

func NewTTL[K comparable, V any](capacity int, ttl time.Duration, opts ...Option[K, V]) (*TTL[K, V], error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive, got %v", ErrInvalidArgument, ttl)
	}
	e, err := newEngine("TTL", PolicyTTL, false, capacity, opts)
	if err != nil {
		return nil, err
	}
	// ttl固定，追加到尾部就是有序的
	e.expiry = ledger.NewExpiry[K]()
	return &TTL[K, V]{engine: e, ttl: ttl}, nil
}

// Set 添加数据到缓存，过期时间重新计算
func (c *TTL[K, V]) Set(key K, value V) {
	now := c.sweepExpired()
	if c.set(key, value, false) {
		c.expiry.Push(key, now.Add(c.ttl))
	}
}

// Remaining 剩余存活时间
func (c *TTL[K, V]) Remaining(key K) (time.Duration, bool) {
	return c.remaining(key)
}

func (c *TTL[K, V]) Equal(o *TTL[K, V]) bool {
	return o != nil && c.ttl == o.ttl && c.equal(o.engine)
}

// VTTL 每个元素单独设置过期时间的缓存
//
// 过期链表按过期时间升序，插入位置通过对数组镜像二分查找得到。
type VTTL[K comparable, V any] struct {
	*engine[K, V]
}

func NewVTTL[K comparable, V any](capacity int, opts ...Option[K, V]) (*VTTL[K, V], error) {
	e, err := newEngine("VTTL", PolicyTTL, false, capacity, opts)
	if err != nil {
		return nil, err
	}
	e.expiry = ledger.NewSortedExpiry[K]()
	return &VTTL[K, V]{engine: e}, nil
}

// Set 添加数据到缓存，ttl为0的元素在下一次访问时过期
func (c *VTTL[K, V]) Set(key K, value V, ttl time.Duration) error {
	if ttl < 0 {
		return fmt.Errorf("%w: ttl must not be negative, got %v", ErrInvalidArgument, ttl)
	}
	now := c.sweepExpired()
	if c.set(key, value, false) {
		c.expiry.Push(key, now.Add(ttl))
	}
	return nil
}

func (c *VTTL[K, V]) Remaining(key K) (time.Duration, bool) {
	return c.remaining(key)
}

func (c *VTTL[K, V]) Equal(o *VTTL[K, V]) bool {
	return o != nil && c.equal(o.engine)
}

// BoundedTTL 过期时间在[min, max]内均匀随机的缓存
//
// 和TTL一样追加到过期链表尾部，链表不保证有序：
// 头部元素没过期时，排在后面已经过期的元素要等头部过期后才会被清理。
type BoundedTTL[K comparable, V any] struct {
	*engine[K, V]
	min time.Duration
	max time.Duration
}

func NewBoundedTTL[K comparable, V any](capacity int, min, max time.Duration, opts ...Option[K, V]) (*BoundedTTL[K, V], error) {
	if min < 0 || min > max {
		return nil, fmt.Errorf("%w: invalid ttl bounds [%v, %v]", ErrInvalidArgument, min, max)
	}
	e, err := newEngine("BoundedTTL", PolicyBoundedTTL, false, capacity, opts)
	if err != nil {
		return nil, err
	}
	e.expiry = ledger.NewExpiry[K]()
	return &BoundedTTL[K, V]{engine: e, min: min, max: max}, nil
}

func (c *BoundedTTL[K, V]) Set(key K, value V) {
	now := c.sweepExpired()
	if c.set(key, value, false) {
		c.expiry.Push(key, now.Add(c.randomTTL()))
	}
}

func (c *BoundedTTL[K, V]) randomTTL() time.Duration {
	return c.min + time.Duration(c.rand.Int64N(int64(c.max-c.min)+1))
}

func (c *BoundedTTL[K, V]) Remaining(key K) (time.Duration, bool) {
	return c.remaining(key)
}

func (c *BoundedTTL[K, V]) Equal(o *BoundedTTL[K, V]) bool {
	return o != nil && c.min == o.min && c.max == o.max && c.equal(o.engine)
}

// VolatileTTL 只有非持久的key会过期和被淘汰
type VolatileTTL[K comparable, V any] struct {
	*engine[K, V]
	ttl time.Duration
}

func NewVolatileTTL[K comparable, V any](capacity int, ttl time.Duration, opts ...Option[K, V]) (*VolatileTTL[K, V], error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive, got %v", ErrInvalidArgument, ttl)
	}
	e, err := newEngine("VolatileTTL", PolicyTTL, true, capacity, opts)
	if err != nil {
		return nil, err
	}
	e.expiry = ledger.NewExpiry[K]()
	return &VolatileTTL[K, V]{engine: e, ttl: ttl}, nil
}

// Set 添加数据到缓存，持久key没有过期时间
func (c *VolatileTTL[K, V]) Set(key K, value V, persists bool) bool {
	now := c.sweepExpired()
	if !c.set(key, value, persists) {
		return false
	}
	if persists {
		c.expiry.Remove(key)
	} else {
		c.expiry.Push(key, now.Add(c.ttl))
	}
	return true
}

func (c *VolatileTTL[K, V]) Remaining(key K) (time.Duration, bool) {
	return c.remaining(key)
}

func (c *VolatileTTL[K, V]) Persistent(key K) bool {
	return c.persistent(key)
}

func (c *VolatileTTL[K, V]) Equal(o *VolatileTTL[K, V]) bool {
	return o != nil && c.ttl == o.ttl && c.equal(o.engine)
}
