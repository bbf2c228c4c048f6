// Package cacheing 并发安全的读穿透缓存，未命中时通过Getter加载
package cacheing

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jiaxwu/cacheing/cache"
	"github.com/jiaxwu/cacheing/consistenthash"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Getter 用于加载数据
type Getter interface {
	Get(key string) (ByteView, error)
}

type GetterFunc func(key string) (ByteView, error)

func (f GetterFunc) Get(key string) (ByteView, error) {
	return f(key)
}

// Group 一个缓存命名空间
type Group struct {
	name   string
	getter Getter
	// 分片名字到分片的映射
	shards map[string]*shard
	// 选择key所在的分片
	ring *consistenthash.Ring
	// 避免对同一个key多次加载
	loadGroup *singleflight.Group
	// 避免对同一个key多次删除
	removeGroup *singleflight.Group
	// getter返回error时对应空值key的过期时间
	emptyKeyDuration time.Duration
	logger           *zap.Logger
	now              func() time.Time
}

var (
	// 对全局group操作的锁
	mu sync.RWMutex
	// 缓存全局的group
	groups = make(map[string]*Group)
)

// NewGroup 创建一个Group并注册到全局，capacity是所有分片的总容量
func NewGroup(name string, capacity int, getter Getter, opts ...GroupOption) (*Group, error) {
	if getter == nil {
		panic("nil Getter")
	}
	o := newGroupOptions(capacity, opts)
	if o.shards <= 0 {
		return nil, fmt.Errorf("%w: shards must be positive, got %d", cache.ErrInvalidArgument, o.shards)
	}
	if capacity < o.shards {
		return nil, fmt.Errorf("%w: capacity %d is less than shards %d", cache.ErrInvalidArgument, capacity, o.shards)
	}

	g := &Group{
		name:        name,
		getter:      getter,
		shards:      make(map[string]*shard, o.shards),
		ring:        consistenthash.New(defaultReplicas, nil),
		loadGroup:   &singleflight.Group{},
		removeGroup: &singleflight.Group{},
		logger:      o.logger.With(zap.String("group", name)),
		now:         o.now,
	}
	cfg := o.cfg
	cfg.Capacity = capacity / o.shards
	if capacity%o.shards != 0 {
		cfg.Capacity++
	}
	for i := 0; i < o.shards; i++ {
		store, err := cache.New(cfg,
			cache.WithClock[string, ByteView](o.now),
			cache.WithOnEvicted(g.onEvicted),
		)
		if err != nil {
			return nil, err
		}
		id := strconv.Itoa(i)
		g.shards[id] = &shard{store: store, now: o.now}
		g.ring.Add(id)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := groups[name]; ok {
		panic("duplicate group " + name)
	}
	groups[name] = g
	return g, nil
}

// GetGroup 从全局缓存获取Group
func GetGroup(name string) *Group {
	mu.RLock()
	defer mu.RUnlock()
	return groups[name]
}

// Name 命名空间名字
func (g *Group) Name() string {
	return g.name
}

// SetEmptyWhenError 当getter返回error时设置空值，缓解缓存穿透问题
// 为0表示该机制不生效
func (g *Group) SetEmptyWhenError(duration time.Duration) {
	g.emptyKeyDuration = duration
}

// Get 从缓存获取key对应的value
func (g *Group) Get(key string) (ByteView, error) {
	if key == "" {
		return ByteView{}, errors.New("key is required")
	}
	if v, ok := g.shardOf(key).get(key); ok {
		g.logger.Debug("cache hit", zap.String("key", key))
		return v, nil
	}
	return g.load(key)
}

// Remove 从缓存删除key
func (g *Group) Remove(key string) error {
	if key == "" {
		return errors.New("key is required")
	}
	_, err, _ := g.removeGroup.Do(key, func() (any, error) {
		if g.shardOf(key).remove(key) {
			g.logger.Debug("removed", zap.String("key", key))
		}
		return nil, nil
	})
	return err
}

// Len 所有分片的元素个数
func (g *Group) Len() int {
	n := 0
	for _, s := range g.shards {
		n += s.len()
	}
	return n
}

func (g *Group) shardOf(key string) *shard {
	return g.shards[g.ring.Get(key)]
}

// 加载缓存
func (g *Group) load(key string) (ByteView, error) {
	view, err, shared := g.loadGroup.Do(key, func() (any, error) {
		// 可能已经被上一次加载写入
		if v, ok := g.shardOf(key).get(key); ok {
			return v, nil
		}
		return g.loadLocally(key)
	})
	if err != nil {
		return ByteView{}, err
	}
	if shared {
		g.logger.Debug("shared load", zap.String("key", key))
	}
	return view.(ByteView), nil
}

// 从getter加载缓存值
func (g *Group) loadLocally(key string) (ByteView, error) {
	g.logger.Debug("cache miss, loading", zap.String("key", key))
	value, err := g.getter.Get(key)
	if err != nil {
		g.logger.Warn("failed to load", zap.String("key", key), zap.Error(err))
		if g.emptyKeyDuration == 0 {
			return ByteView{}, err
		}
		// 走缓存空值机制
		value = ByteView{
			expire: g.now().Add(g.emptyKeyDuration),
		}
	}
	g.populateCache(key, value)
	return value, nil
}

// 发布到缓存
func (g *Group) populateCache(key string, value ByteView) {
	g.shardOf(key).add(key, value)
}

// 在分片锁内调用
func (g *Group) onEvicted(key string, value ByteView) {
	g.logger.Debug("evicted", zap.String("key", key), zap.Int("bytes", value.Len()))
}
