package ledger

import "github.com/jiaxwu/cacheing/linkedlist"

// O(1)的LFU：频率桶组成双向链表，频率严格递增，每个桶内按进入顺序排列。
// Ketan Shah, Anirban Mitra, Dhruv Matani, An O(1) algorithm for implementing the LFU cache eviction scheme.

// Bucket 一个频率桶的快照
type Bucket[K comparable] struct {
	Freq int
	Keys []K
}

type bucket[K comparable] struct {
	freq int
	keys *linkedlist.List[K]
}

// key在哪个桶的哪个位置
type position struct {
	bucket linkedlist.Handle
	elem   linkedlist.Handle
}

// Frequency 访问频率账本，空桶会被立即删除
type Frequency[K comparable] struct {
	buckets *linkedlist.List[bucket[K]]
	index   map[K]position
}

func NewFrequency[K comparable]() *Frequency[K] {
	return &Frequency[K]{
		buckets: linkedlist.New[bucket[K]](),
		index:   make(map[K]position),
	}
}

// Insert 以频率1插入新key，已经存在返回false
func (f *Frequency[K]) Insert(key K) bool {
	if _, ok := f.index[key]; ok {
		return false
	}
	front := f.buckets.Front()
	if front == linkedlist.Nil || f.buckets.Value(front).freq != 1 {
		front = f.buckets.PushFront(bucket[K]{freq: 1, keys: linkedlist.New[K]()})
	}
	elem := f.buckets.Value(front).keys.PushBack(key)
	f.index[key] = position{bucket: front, elem: elem}
	return true
}

// Increment 访问频率加1，移动到下一个桶
func (f *Frequency[K]) Increment(key K) bool {
	pos, ok := f.index[key]
	if !ok {
		return false
	}
	cur := f.buckets.Value(pos.bucket)
	cur.keys.Remove(pos.elem)

	target := f.buckets.Next(pos.bucket)
	if target == linkedlist.Nil || f.buckets.Value(target).freq != cur.freq+1 {
		target = f.buckets.InsertAfter(bucket[K]{freq: cur.freq + 1, keys: linkedlist.New[K]()}, pos.bucket)
	}
	elem := f.buckets.Value(target).keys.PushBack(key)
	f.index[key] = position{bucket: target, elem: elem}

	if cur.keys.Len() == 0 {
		f.buckets.Remove(pos.bucket)
	}
	return true
}

// Delete 删除key
func (f *Frequency[K]) Delete(key K) bool {
	pos, ok := f.index[key]
	if !ok {
		return false
	}
	f.detach(key, pos)
	return true
}

// Min 频率最低的桶里最早进入的key
func (f *Frequency[K]) Min() (K, bool) {
	front := f.buckets.Front()
	if front == linkedlist.Nil {
		var zero K
		return zero, false
	}
	keys := f.buckets.Value(front).keys
	return keys.Value(keys.Front()), true
}

// PopMin 删除并返回频率最低的key
func (f *Frequency[K]) PopMin() (K, bool) {
	key, ok := f.Min()
	if ok {
		f.detach(key, f.index[key])
	}
	return key, ok
}

// Frequency 返回key的访问频率
func (f *Frequency[K]) Frequency(key K) (int, bool) {
	pos, ok := f.index[key]
	if !ok {
		return 0, false
	}
	return f.buckets.Value(pos.bucket).freq, true
}

func (f *Frequency[K]) Contains(key K) bool {
	_, ok := f.index[key]
	return ok
}

func (f *Frequency[K]) Len() int {
	return len(f.index)
}

// Keys 按淘汰顺序返回所有key
func (f *Frequency[K]) Keys() []K {
	keys := make([]K, 0, len(f.index))
	for _, b := range f.buckets.All() {
		keys = append(keys, b.keys.Values()...)
	}
	return keys
}

// Buckets 按频率从低到高返回所有桶
func (f *Frequency[K]) Buckets() []Bucket[K] {
	buckets := make([]Bucket[K], 0, f.buckets.Len())
	for _, b := range f.buckets.All() {
		buckets = append(buckets, Bucket[K]{Freq: b.freq, Keys: b.keys.Values()})
	}
	return buckets
}

func (f *Frequency[K]) detach(key K, pos position) {
	keys := f.buckets.Value(pos.bucket).keys
	keys.Remove(pos.elem)
	if keys.Len() == 0 {
		f.buckets.Remove(pos.bucket)
	}
	delete(f.index, key)
}
