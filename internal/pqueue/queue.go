// Package pqueue is a small generic priority queue built directly on top
// of container/heap, mirroring the teacher's own EventQueue.
package pqueue

import "container/heap"

type heapSlice[E any] struct {
	items []E
	less  func(a, b E) bool
}

func (h *heapSlice[E]) Len() int            { return len(h.items) }
func (h *heapSlice[E]) Less(i, j int) bool  { return h.less(h.items[i], h.items[j]) }
func (h *heapSlice[E]) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *heapSlice[E]) Push(x interface{})  { h.items = append(h.items, x.(E)) }
func (h *heapSlice[E]) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Queue is a binary min-heap over E ordered by an injected Less. Elements
// already in the queue are never re-keyed; a caller that needs to
// supersede an element marks it invalid in place and filters on Poll/Peek.
type Queue[E any] struct {
	h *heapSlice[E]
}

// New constructs an empty queue ordered by less.
func New[E any](less func(a, b E) bool) *Queue[E] {
	h := &heapSlice[E]{less: less}
	heap.Init(h)
	return &Queue[E]{h: h}
}

// Add inserts element into the queue.
func (q *Queue[E]) Add(element E) {
	heap.Push(q.h, element)
}

// Peek returns the minimum element without removing it.
func (q *Queue[E]) Peek() E {
	return q.h.items[0]
}

// Poll removes and returns the minimum element.
func (q *Queue[E]) Poll() E {
	return heap.Pop(q.h).(E)
}

// Empty reports whether the queue has no elements.
func (q *Queue[E]) Empty() bool {
	return len(q.h.items) == 0
}

// Len reports the number of elements currently queued.
func (q *Queue[E]) Len() int {
	return len(q.h.items)
}
