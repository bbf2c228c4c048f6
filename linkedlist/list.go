// Package linkedlist 基于数组的双向链表，节点通过稳定的整数句柄访问
package linkedlist

import "iter"

// Handle 节点句柄，零值表示空节点
type Handle int

// Nil 空句柄
const Nil Handle = 0

type node[T any] struct {
	value T
	prev  Handle
	next  Handle
	live  bool
}

// List 双向链表，所有节点存放在同一个数组里，删除的槽位放入空闲链表复用
type List[T any] struct {
	// nodes[0]保留不用，这样Handle零值就是空
	nodes []node[T]
	free  []Handle
	head  Handle
	tail  Handle
	len   int
}

// New 创建一个链表
func New[T any]() *List[T] {
	return &List[T]{nodes: make([]node[T], 1)}
}

// Len 节点数量
func (l *List[T]) Len() int {
	return l.len
}

// Front 第一个节点
func (l *List[T]) Front() Handle {
	return l.head
}

// Back 最后一个节点
func (l *List[T]) Back() Handle {
	return l.tail
}

// Next 下一个节点，没有返回Nil
func (l *List[T]) Next(h Handle) Handle {
	return l.at(h).next
}

// Prev 上一个节点，没有返回Nil
func (l *List[T]) Prev(h Handle) Handle {
	return l.at(h).prev
}

// Value 节点的值
func (l *List[T]) Value(h Handle) T {
	return l.at(h).value
}

// Set 修改节点的值
func (l *List[T]) Set(h Handle, value T) {
	l.at(h).value = value
}

// PushBack 插入到尾部
func (l *List[T]) PushBack(value T) Handle {
	h := l.alloc(value)
	l.linkAfter(h, l.tail)
	return h
}

// PushFront 插入到头部
func (l *List[T]) PushFront(value T) Handle {
	h := l.alloc(value)
	l.linkBefore(h, l.head)
	return h
}

// InsertAfter 插入到mark后面
func (l *List[T]) InsertAfter(value T, mark Handle) Handle {
	l.at(mark)
	h := l.alloc(value)
	l.linkAfter(h, mark)
	return h
}

// InsertBefore 插入到mark前面
func (l *List[T]) InsertBefore(value T, mark Handle) Handle {
	l.at(mark)
	h := l.alloc(value)
	l.linkBefore(h, mark)
	return h
}

// Remove 删除节点并返回它的值，句柄之后会被复用
func (l *List[T]) Remove(h Handle) T {
	n := l.at(h)
	value := n.value
	l.unlink(h)
	l.len--
	var zero T
	n.value = zero
	n.live = false
	l.free = append(l.free, h)
	return value
}

// MoveToBack 移动到尾部
func (l *List[T]) MoveToBack(h Handle) {
	l.at(h)
	if l.tail == h {
		return
	}
	l.unlink(h)
	l.linkAfter(h, l.tail)
}

// MoveToFront 移动到头部
func (l *List[T]) MoveToFront(h Handle) {
	l.at(h)
	if l.head == h {
		return
	}
	l.unlink(h)
	l.linkBefore(h, l.head)
}

// All 从头到尾遍历
func (l *List[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for h := l.head; h != Nil; {
			n := l.at(h)
			next := n.next
			if !yield(h, n.value) {
				return
			}
			h = next
		}
	}
}

// Values 按顺序返回所有值
func (l *List[T]) Values() []T {
	values := make([]T, 0, l.len)
	for h := l.head; h != Nil; h = l.nodes[h].next {
		values = append(values, l.nodes[h].value)
	}
	return values
}

func (l *List[T]) at(h Handle) *node[T] {
	if h <= Nil || int(h) >= len(l.nodes) || !l.nodes[h].live {
		panic("linkedlist: invalid handle")
	}
	return &l.nodes[h]
}

func (l *List[T]) alloc(value T) Handle {
	var h Handle
	if n := len(l.free); n > 0 {
		h = l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[h] = node[T]{value: value, live: true}
	} else {
		h = Handle(len(l.nodes))
		l.nodes = append(l.nodes, node[T]{value: value, live: true})
	}
	l.len++
	return h
}

// 把h接到prev后面，prev为Nil表示接到头部
func (l *List[T]) linkAfter(h, prev Handle) {
	n := &l.nodes[h]
	n.prev = prev
	if prev == Nil {
		n.next = l.head
		l.head = h
	} else {
		n.next = l.nodes[prev].next
		l.nodes[prev].next = h
	}
	if n.next == Nil {
		l.tail = h
	} else {
		l.nodes[n.next].prev = h
	}
}

// 把h接到next前面，next为Nil表示接到尾部
func (l *List[T]) linkBefore(h, next Handle) {
	if next == Nil {
		l.linkAfter(h, l.tail)
		return
	}
	l.linkAfter(h, l.nodes[next].prev)
}

func (l *List[T]) unlink(h Handle) {
	n := &l.nodes[h]
	if n.prev == Nil {
		l.head = n.next
	} else {
		l.nodes[n.prev].next = n.next
	}
	if n.next == Nil {
		l.tail = n.prev
	} else {
		l.nodes[n.next].prev = n.prev
	}
	n.prev, n.next = Nil, Nil
}
