// Package cache 有容量上限的进程内缓存，支持多种淘汰策略
//
// FIFO、LRU、LFU、Random按对应规则淘汰；TTL系列在LRU的基础上增加过期时间，
// 过期的key在下一次访问缓存时被惰性清理；Volatile系列区分持久key和可淘汰key，
// 只会淘汰可淘汰key，容量满且没有可淘汰key时新的写入会被丢弃。
//
// 缓存不是并发安全的，并发访问需要在外部对每个完整操作加锁。
package cache

import "iter"

type Cache[K comparable, V any] interface {
	// Get 获取元素，不存在返回ErrNotFound
	Get(key K) (V, error)
	// GetOr 获取元素，不存在返回def
	GetOr(key K, def V) V
	// Peek 获取元素但不更新淘汰顺序
	Peek(key K) (V, bool)
	// Delete 删除元素，不存在返回ErrNotFound
	Delete(key K) error
	// Pop 删除并返回元素
	Pop(key K) (V, error)
	// PopOr 删除并返回元素，不存在返回def
	PopOr(key K, def V) V
	// PopItem 按淘汰策略删除一个元素，不调用淘汰回调
	PopItem() (K, V, error)
	// Evict 驱逐元素，会调用淘汰回调
	Evict() (K, V, error)
	// Contains 是否存在
	Contains(key K) bool
	// Len 缓存元素个数
	Len() int
	// Cap 缓存容量
	Cap() int
	Keys() iter.Seq[K]
	Values() iter.Seq[V]
	All() iter.Seq2[K, V]
	// Clear 清空缓存，不调用淘汰回调
	Clear()
	String() string
}

// Store 写入时不需要额外参数的缓存
type Store[K comparable, V any] interface {
	Cache[K, V]
	// Set 设置元素
	Set(key K, value V)
}
