package cache

import (
	"math/rand/v2"
	"time"
)

type options[K comparable, V any] struct {
	// 可选，在元素被淘汰的时候执行，过期不会执行
	onEvicted func(key K, value V)
	now       func() time.Time
	rand      *rand.Rand
}

// Option 缓存配置
type Option[K comparable, V any] func(*options[K, V])

// WithOnEvicted 设置淘汰回调
func WithOnEvicted[K comparable, V any](onEvicted func(key K, value V)) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvicted = onEvicted
	}
}

// WithClock 设置时钟，默认time.Now
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(o *options[K, V]) {
		o.now = now
	}
}

// WithRand 设置随机数来源，Random和BoundedTTL使用
func WithRand[K comparable, V any](r *rand.Rand) Option[K, V] {
	return func(o *options[K, V]) {
		o.rand = r
	}
}

func newOptions[K comparable, V any](opts []Option[K, V]) *options[K, V] {
	o := &options[K, V]{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}
