package cacheing

import (
	"time"

	"github.com/jiaxwu/cacheing/cache"
	"go.uber.org/zap"
)

const (
	// 虚拟节点倍数
	defaultReplicas = 50
)

type groupOptions struct {
	cfg    cache.Config
	shards int
	logger *zap.Logger
	now    func() time.Time
}

// GroupOption Group配置
type GroupOption func(*groupOptions)

// WithPolicy 设置淘汰策略，默认LRU
func WithPolicy(p cache.Policy) GroupOption {
	return func(o *groupOptions) {
		o.cfg.Policy = p
	}
}

// WithTTL 设置固定过期时间，会把策略改为cache.PolicyTTL
func WithTTL(ttl time.Duration) GroupOption {
	return func(o *groupOptions) {
		o.cfg.Policy = cache.PolicyTTL
		o.cfg.TTL = ttl
	}
}

// WithTTLBounds 设置过期时间范围，会把策略改为cache.PolicyBoundedTTL
func WithTTLBounds(min, max time.Duration) GroupOption {
	return func(o *groupOptions) {
		o.cfg.Policy = cache.PolicyBoundedTTL
		o.cfg.TTLMin, o.cfg.TTLMax = min, max
	}
}

// WithShards 设置分片数量，容量平均分到每个分片，默认1
func WithShards(n int) GroupOption {
	return func(o *groupOptions) {
		o.shards = n
	}
}

// WithLogger 设置日志，默认不输出
func WithLogger(logger *zap.Logger) GroupOption {
	return func(o *groupOptions) {
		o.logger = logger
	}
}

// WithClock 设置时钟，默认time.Now
func WithClock(now func() time.Time) GroupOption {
	return func(o *groupOptions) {
		o.now = now
	}
}

func newGroupOptions(capacity int, opts []GroupOption) *groupOptions {
	o := &groupOptions{
		cfg:    cache.Config{Policy: cache.PolicyLRU, Capacity: capacity},
		shards: 1,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}
