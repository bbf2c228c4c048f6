// Package ledger 缓存的辅助排序结构：访问顺序、访问频率、过期时间、随机下标集合
//
// 所有结构都只保存key，value由缓存自己的map管理。
package ledger

import "github.com/jiaxwu/cacheing/linkedlist"

// Recency 按访问顺序排列的key，头部最久没访问，尾部最近访问
type Recency[K comparable] struct {
	ll    *linkedlist.List[K]
	index map[K]linkedlist.Handle
}

func NewRecency[K comparable]() *Recency[K] {
	return &Recency[K]{
		ll:    linkedlist.New[K](),
		index: make(map[K]linkedlist.Handle),
	}
}

// Add 添加到尾部，已经存在则不改变位置
func (r *Recency[K]) Add(key K) bool {
	if _, ok := r.index[key]; ok {
		return false
	}
	r.index[key] = r.ll.PushBack(key)
	return true
}

// Touch 移动到尾部，不存在则添加
func (r *Recency[K]) Touch(key K) {
	if h, ok := r.index[key]; ok {
		r.ll.MoveToBack(h)
		return
	}
	r.index[key] = r.ll.PushBack(key)
}

// Remove 删除key
func (r *Recency[K]) Remove(key K) bool {
	h, ok := r.index[key]
	if !ok {
		return false
	}
	r.ll.Remove(h)
	delete(r.index, key)
	return true
}

// Oldest 最久没访问的key
func (r *Recency[K]) Oldest() (K, bool) {
	front := r.ll.Front()
	if front == linkedlist.Nil {
		var zero K
		return zero, false
	}
	return r.ll.Value(front), true
}

// PopOldest 删除并返回最久没访问的key
func (r *Recency[K]) PopOldest() (K, bool) {
	key, ok := r.Oldest()
	if ok {
		r.Remove(key)
	}
	return key, ok
}

func (r *Recency[K]) Contains(key K) bool {
	_, ok := r.index[key]
	return ok
}

func (r *Recency[K]) Len() int {
	return r.ll.Len()
}

// Keys 从最久没访问到最近访问
func (r *Recency[K]) Keys() []K {
	return r.ll.Values()
}
