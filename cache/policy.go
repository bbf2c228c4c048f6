package cache

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/jiaxwu/cacheing/ledger"
)

// Policy 淘汰策略
type Policy string

const (
	// PolicyFIFO 淘汰最早写入的key
	PolicyFIFO Policy = "fifo"
	// PolicyLRU 淘汰最近最少使用的key
	PolicyLRU Policy = "lru"
	// PolicyLFU 淘汰访问次数最少的key，次数相同淘汰最早进入该次数的
	PolicyLFU Policy = "lfu"
	// PolicyRandom 随机淘汰
	PolicyRandom Policy = "random"
	// PolicyTTL 固定过期时间，容量满时按LRU淘汰
	PolicyTTL Policy = "ttl"
	// PolicyBoundedTTL 过期时间在[TTLMin, TTLMax]内随机，容量满时按LRU淘汰
	PolicyBoundedTTL Policy = "bounded-ttl"
)

// ParsePolicy 解析淘汰策略名字，不区分大小写
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PolicyFIFO, PolicyLRU, PolicyLFU, PolicyRandom, PolicyTTL, PolicyBoundedTTL:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown policy %q", ErrInvalidArgument, s)
}

// 淘汰策略维护的账本，只包含可淘汰的key
type policy[K comparable] interface {
	// add 新增可淘汰的key
	add(key K)
	// touch 读取或者覆盖了已经在账本里的key
	touch(key K)
	remove(key K)
	// victim 选出要淘汰的key，不会删除
	victim() (K, bool)
	len() int
	equal(other policy[K]) bool
}

func newPolicy[K comparable](p Policy, r *rand.Rand) policy[K] {
	switch p {
	case PolicyFIFO:
		return &fifoPolicy[K]{order: ledger.NewRecency[K]()}
	case PolicyLRU, PolicyTTL, PolicyBoundedTTL:
		return &lruPolicy[K]{order: ledger.NewRecency[K]()}
	case PolicyLFU:
		return &lfuPolicy[K]{freq: ledger.NewFrequency[K]()}
	case PolicyRandom:
		return &randomPolicy[K]{set: ledger.NewRandomSet[K](), rand: r}
	}
	panic("cache: unknown policy " + string(p))
}

// 按写入顺序，读取和覆盖都不改变顺序
type fifoPolicy[K comparable] struct {
	order *ledger.Recency[K]
}

func (p *fifoPolicy[K]) add(key K)    { p.order.Add(key) }
func (p *fifoPolicy[K]) touch(K)      {}
func (p *fifoPolicy[K]) remove(key K) { p.order.Remove(key) }
func (p *fifoPolicy[K]) victim() (K, bool) {
	return p.order.Oldest()
}
func (p *fifoPolicy[K]) len() int { return p.order.Len() }
func (p *fifoPolicy[K]) equal(other policy[K]) bool {
	o, ok := other.(*fifoPolicy[K])
	return ok && slices.Equal(p.order.Keys(), o.order.Keys())
}

type lruPolicy[K comparable] struct {
	order *ledger.Recency[K]
}

func (p *lruPolicy[K]) add(key K)    { p.order.Touch(key) }
func (p *lruPolicy[K]) touch(key K)  { p.order.Touch(key) }
func (p *lruPolicy[K]) remove(key K) { p.order.Remove(key) }
func (p *lruPolicy[K]) victim() (K, bool) {
	return p.order.Oldest()
}
func (p *lruPolicy[K]) len() int { return p.order.Len() }
func (p *lruPolicy[K]) equal(other policy[K]) bool {
	o, ok := other.(*lruPolicy[K])
	return ok && slices.Equal(p.order.Keys(), o.order.Keys())
}

type lfuPolicy[K comparable] struct {
	freq *ledger.Frequency[K]
}

func (p *lfuPolicy[K]) add(key K)    { p.freq.Insert(key) }
func (p *lfuPolicy[K]) touch(key K)  { p.freq.Increment(key) }
func (p *lfuPolicy[K]) remove(key K) { p.freq.Delete(key) }
func (p *lfuPolicy[K]) victim() (K, bool) {
	return p.freq.Min()
}
func (p *lfuPolicy[K]) len() int { return p.freq.Len() }
func (p *lfuPolicy[K]) equal(other policy[K]) bool {
	o, ok := other.(*lfuPolicy[K])
	if !ok {
		return false
	}
	return slices.EqualFunc(p.freq.Buckets(), o.freq.Buckets(), func(a, b ledger.Bucket[K]) bool {
		return a.Freq == b.Freq && slices.Equal(a.Keys, b.Keys)
	})
}

// 读取和覆盖都不影响随机淘汰
type randomPolicy[K comparable] struct {
	set  *ledger.RandomSet[K]
	rand *rand.Rand
}

func (p *randomPolicy[K]) add(key K)    { p.set.Add(key) }
func (p *randomPolicy[K]) touch(K)      {}
func (p *randomPolicy[K]) remove(key K) { p.set.Remove(key) }
func (p *randomPolicy[K]) victim() (K, bool) {
	return p.set.Random(p.rand)
}
func (p *randomPolicy[K]) len() int { return p.set.Len() }
func (p *randomPolicy[K]) equal(other policy[K]) bool {
	o, ok := other.(*randomPolicy[K])
	return ok && slices.Equal(p.set.Keys(), o.set.Keys())
}
