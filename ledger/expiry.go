package ledger

import (
	"slices"
	"sort"
	"time"

	"github.com/jiaxwu/cacheing/linkedlist"
)

// Link 过期链表的一个节点
type Link[K comparable] struct {
	Key    K
	Expiry time.Time
}

// Expiry 过期时间账本，头部最早过期
//
// 追加模式只往尾部插入，依赖ttl固定保证顺序；
// 有序模式用一个和链表同序的数组做二分查找，找到插入位置。
type Expiry[K comparable] struct {
	ll    *linkedlist.List[Link[K]]
	index map[K]linkedlist.Handle
	// 有序模式下链表的数组镜像
	sorted bool
	rep    []linkedlist.Handle
}

// NewExpiry 创建追加模式的过期账本
func NewExpiry[K comparable]() *Expiry[K] {
	return &Expiry[K]{
		ll:    linkedlist.New[Link[K]](),
		index: make(map[K]linkedlist.Handle),
	}
}

// NewSortedExpiry 创建有序模式的过期账本
func NewSortedExpiry[K comparable]() *Expiry[K] {
	e := NewExpiry[K]()
	e.sorted = true
	return e
}

// Push 设置key的过期时间，已经存在的key会先移除再重新插入
func (e *Expiry[K]) Push(key K, expiry time.Time) {
	e.Remove(key)
	link := Link[K]{Key: key, Expiry: expiry}
	if !e.sorted {
		e.index[key] = e.ll.PushBack(link)
		return
	}
	// 相同过期时间的插在已有节点后面
	i := sort.Search(len(e.rep), func(i int) bool {
		return e.expiryAt(i).After(expiry)
	})
	var h linkedlist.Handle
	if i == len(e.rep) {
		h = e.ll.PushBack(link)
	} else {
		h = e.ll.InsertBefore(link, e.rep[i])
	}
	e.rep = slices.Insert(e.rep, i, h)
	e.index[key] = h
}

// Remove 删除key
func (e *Expiry[K]) Remove(key K) bool {
	h, ok := e.index[key]
	if !ok {
		return false
	}
	if e.sorted {
		i := e.repIndex(h)
		e.rep = slices.Delete(e.rep, i, i+1)
	}
	e.ll.Remove(h)
	delete(e.index, key)
	return true
}

// Expiry 返回key的过期时间
func (e *Expiry[K]) Expiry(key K) (time.Time, bool) {
	h, ok := e.index[key]
	if !ok {
		return time.Time{}, false
	}
	return e.ll.Value(h).Expiry, true
}

// Front 最早过期的节点
func (e *Expiry[K]) Front() (Link[K], bool) {
	front := e.ll.Front()
	if front == linkedlist.Nil {
		return Link[K]{}, false
	}
	return e.ll.Value(front), true
}

// Sweep 从头部开始移除过期时间不晚于now的节点，遇到第一个没过期的就停止
// 返回移除的数量
func (e *Expiry[K]) Sweep(now time.Time, onExpired func(key K)) int {
	n := 0
	for front := e.ll.Front(); front != linkedlist.Nil; front = e.ll.Front() {
		link := e.ll.Value(front)
		if link.Expiry.After(now) {
			break
		}
		e.ll.Remove(front)
		delete(e.index, link.Key)
		n++
		if onExpired != nil {
			onExpired(link.Key)
		}
	}
	if e.sorted && n > 0 {
		e.rep = slices.Delete(e.rep, 0, n)
	}
	return n
}

func (e *Expiry[K]) Contains(key K) bool {
	_, ok := e.index[key]
	return ok
}

func (e *Expiry[K]) Len() int {
	return e.ll.Len()
}

// Links 按链表顺序返回所有节点
func (e *Expiry[K]) Links() []Link[K] {
	return e.ll.Values()
}

func (e *Expiry[K]) expiryAt(i int) time.Time {
	return e.ll.Value(e.rep[i]).Expiry
}

// 二分找到相同过期时间的第一个位置，再向后找到h
func (e *Expiry[K]) repIndex(h linkedlist.Handle) int {
	expiry := e.ll.Value(h).Expiry
	i := sort.Search(len(e.rep), func(i int) bool {
		return !e.expiryAt(i).Before(expiry)
	})
	for ; i < len(e.rep); i++ {
		if e.rep[i] == h {
			return i
		}
	}
	panic("ledger: expiry link missing from sorted index")
}
