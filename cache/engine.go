package cache

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/jiaxwu/cacheing/ledger"
	"github.com/jiaxwu/cacheing/linkedlist"
)

type entry[K comparable, V any] struct {
	key      K
	value    V
	persists bool
}

// engine 所有缓存共用的部分，具体选择哪个key淘汰交给policy
type engine[K comparable, V any] struct {
	name     string
	capacity int
	// 容量满且没有可淘汰key时丢弃写入，而不是报错
	volatile bool
	// 按写入顺序保存元素，保证遍历和打印的顺序稳定
	entries *linkedlist.List[entry[K, V]]
	index   map[K]linkedlist.Handle
	policy  policy[K]
	// 为nil表示元素不会过期
	expiry    *ledger.Expiry[K]
	now       func() time.Time
	rand      *rand.Rand
	onEvicted func(key K, value V)
}

func newEngine[K comparable, V any](name string, p Policy, volatile bool, capacity int, opts []Option[K, V]) (*engine[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidArgument, capacity)
	}
	o := newOptions(opts)
	return &engine[K, V]{
		name:      name,
		capacity:  capacity,
		volatile:  volatile,
		entries:   linkedlist.New[entry[K, V]](),
		index:     make(map[K]linkedlist.Handle),
		policy:    newPolicy[K](p, o.rand),
		now:       o.now,
		rand:      o.rand,
		onEvicted: o.onEvicted,
	}, nil
}

// 移除所有过期的key，不调用淘汰回调，返回本次读取的时间
func (e *engine[K, V]) sweepExpired() time.Time {
	if e.expiry == nil {
		return time.Time{}
	}
	now := e.now()
	e.expiry.Sweep(now, func(key K) {
		e.remove(key)
	})
	return now
}

// set 写入元素，返回是否写入成功
func (e *engine[K, V]) set(key K, value V, persists bool) bool {
	if h, ok := e.index[key]; ok {
		ent := e.entries.Value(h)
		tracked := !ent.persists
		ent.value, ent.persists = value, persists
		e.entries.Set(h, ent)
		switch {
		case persists:
			e.policy.remove(key)
		case tracked:
			e.policy.touch(key)
		default:
			e.policy.add(key)
		}
		return true
	}
	if !e.admit() {
		return false
	}
	e.index[key] = e.entries.PushBack(entry[K, V]{key: key, value: value, persists: persists})
	if !persists {
		e.policy.add(key)
	}
	return true
}

// 淘汰直到有空位，Volatile缓存没有可淘汰key时返回false
func (e *engine[K, V]) admit() bool {
	for len(e.index) >= e.capacity {
		if _, _, err := e.evict(); err != nil {
			if errors.Is(err, ErrNoEvictable) {
				return false
			}
			// 容量大于0时账本不可能为空
			panic(err)
		}
	}
	return true
}

func (e *engine[K, V]) evict() (K, V, error) {
	key, ok := e.policy.victim()
	if !ok {
		var zeroK K
		var zeroV V
		if e.volatile {
			return zeroK, zeroV, ErrNoEvictable
		}
		return zeroK, zeroV, ErrCacheEmpty
	}
	value := e.remove(key)
	if e.onEvicted != nil {
		e.onEvicted(key, value)
	}
	return key, value, nil
}

// 从map、淘汰账本和过期账本里删除key
func (e *engine[K, V]) remove(key K) V {
	h := e.index[key]
	ent := e.entries.Remove(h)
	delete(e.index, key)
	e.policy.remove(key)
	if e.expiry != nil {
		e.expiry.Remove(key)
	}
	return ent.value
}

func (e *engine[K, V]) notFound(key K) error {
	return fmt.Errorf("%w: %v", ErrNotFound, key)
}

// Get 获取元素，可淘汰的key会更新淘汰顺序
func (e *engine[K, V]) Get(key K) (V, error) {
	e.sweepExpired()
	h, ok := e.index[key]
	if !ok {
		var zero V
		return zero, e.notFound(key)
	}
	ent := e.entries.Value(h)
	if !ent.persists {
		e.policy.touch(key)
	}
	return ent.value, nil
}

// GetOr 获取元素，不存在返回def
func (e *engine[K, V]) GetOr(key K, def V) V {
	if value, err := e.Get(key); err == nil {
		return value
	}
	return def
}

// Peek 获取元素但不更新淘汰顺序
func (e *engine[K, V]) Peek(key K) (V, bool) {
	e.sweepExpired()
	h, ok := e.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.entries.Value(h).value, true
}

// Delete 删除元素
func (e *engine[K, V]) Delete(key K) error {
	e.sweepExpired()
	if _, ok := e.index[key]; !ok {
		return e.notFound(key)
	}
	e.remove(key)
	return nil
}

// Pop 删除并返回元素
func (e *engine[K, V]) Pop(key K) (V, error) {
	e.sweepExpired()
	if _, ok := e.index[key]; !ok {
		var zero V
		return zero, e.notFound(key)
	}
	return e.remove(key), nil
}

// PopOr 删除并返回元素，不存在返回def
func (e *engine[K, V]) PopOr(key K, def V) V {
	if value, err := e.Pop(key); err == nil {
		return value
	}
	return def
}

// PopItem 按淘汰策略删除一个元素，不调用淘汰回调
func (e *engine[K, V]) PopItem() (K, V, error) {
	e.sweepExpired()
	var zeroK K
	var zeroV V
	if len(e.index) == 0 {
		return zeroK, zeroV, fmt.Errorf("%w: cache is empty", ErrNotFound)
	}
	key, ok := e.policy.victim()
	if !ok {
		return zeroK, zeroV, ErrNoEvictable
	}
	return key, e.remove(key), nil
}

// Evict 按淘汰策略驱逐一个元素，会调用淘汰回调
func (e *engine[K, V]) Evict() (K, V, error) {
	e.sweepExpired()
	return e.evict()
}

// Contains 是否存在
func (e *engine[K, V]) Contains(key K) bool {
	e.sweepExpired()
	_, ok := e.index[key]
	return ok
}

// Len 元素个数
func (e *engine[K, V]) Len() int {
	e.sweepExpired()
	return len(e.index)
}

// Cap 容量
func (e *engine[K, V]) Cap() int {
	return e.capacity
}

// Keys 按写入顺序遍历key，开始遍历时保存快照，遍历中删除的key会被跳过
func (e *engine[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range e.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// Values 按写入顺序遍历value
func (e *engine[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range e.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// All 按写入顺序遍历元素
func (e *engine[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		e.sweepExpired()
		keys := e.keys()
		for _, key := range keys {
			h, ok := e.index[key]
			if !ok {
				continue
			}
			if !yield(key, e.entries.Value(h).value) {
				return
			}
		}
	}
}

// Clear 清空缓存
func (e *engine[K, V]) Clear() {
	for _, key := range e.keys() {
		e.remove(key)
	}
}

func (e *engine[K, V]) String() string {
	e.sweepExpired()
	var b strings.Builder
	b.WriteString(e.name)
	b.WriteByte('{')
	i := 0
	for _, ent := range e.entries.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", ent.key, ent.value)
		i++
	}
	b.WriteByte('}')
	return b.String()
}

func (e *engine[K, V]) keys() []K {
	keys := make([]K, 0, len(e.index))
	for _, ent := range e.entries.All() {
		keys = append(keys, ent.key)
	}
	return keys
}

// 剩余存活时间
func (e *engine[K, V]) remaining(key K) (time.Duration, bool) {
	now := e.sweepExpired()
	expiry, ok := e.expiry.Expiry(key)
	if !ok {
		return 0, false
	}
	return expiry.Sub(now), true
}

func (e *engine[K, V]) persistent(key K) bool {
	e.sweepExpired()
	h, ok := e.index[key]
	return ok && e.entries.Value(h).persists
}

// equal 元素、淘汰账本和过期账本完全相同
func (e *engine[K, V]) equal(o *engine[K, V]) bool {
	if e == o {
		return true
	}
	e.sweepExpired()
	o.sweepExpired()
	if e.capacity != o.capacity || len(e.index) != len(o.index) {
		return false
	}
	for _, ent := range e.entries.All() {
		h, ok := o.index[ent.key]
		if !ok {
			return false
		}
		other := o.entries.Value(h)
		if ent.persists != other.persists || !reflect.DeepEqual(ent.value, other.value) {
			return false
		}
	}
	if !e.policy.equal(o.policy) {
		return false
	}
	if e.expiry == nil || o.expiry == nil {
		return e.expiry == nil && o.expiry == nil
	}
	return slices.EqualFunc(e.expiry.Links(), o.expiry.Links(), func(a, b ledger.Link[K]) bool {
		return a.Key == b.Key && a.Expiry.Equal(b.Expiry)
	})
}
