// Package pqueue implements a priority queue that can be capped to the n best
// items. A capped queue keeps its worst retained item at the heap root, so
// checking and evicting the boundary item is O(1) and O(log n).
package pqueue

import (
	"container/heap"
)

// WithOrderAsc makes lower priorities better. This is the default.
func WithOrderAsc() Option {
	return func(q *Queue) {
		q.order = orderAsc
	}
}

// WithOrderDesc makes higher priorities better.
func WithOrderDesc() Option {
	return func(q *Queue) {
		q.order = orderDesc
	}
}

// WithCap bounds the queue to size items.
func WithCap(size uint) Option {
	return func(q *Queue) {
		q.cap = int(size)
	}
}

type Option func(*Queue)

type order uint8

const (
	orderAsc order = iota
	orderDesc
)

type item struct {
	value interface{}
	prior float64
}

func New(opts ...Option) *Queue {
	q := &Queue{order: orderAsc, cap: -1}
	for _, opt := range opts {
		opt(q)
	}
	q.items = &itemHeap{order: q.order}
	return q
}

type Queue struct {
	order order
	cap   int
	items *itemHeap
}

// Push offers val to the queue. When the queue is full, val replaces the worst
// retained item only if its priority is strictly better, so on equal priority
// the item pushed first stays. It reports whether val was retained.
func (q *Queue) Push(val interface{}, priority float64) bool {
	if q.cap == 0 {
		return false
	}
	if q.cap < 0 || q.items.Len() < q.cap {
		heap.Push(q.items, &item{value: val, prior: priority})
		return true
	}
	worst := q.items.list[0]
	if !q.better(priority, worst.prior) {
		return false
	}
	q.items.list[0] = &item{value: val, prior: priority}
	heap.Fix(q.items, 0)
	return true
}

// Worst returns the retained item with the worst priority without removing it.
func (q *Queue) Worst() (interface{}, float64, bool) {
	if q.items.Len() == 0 {
		return nil, 0, false
	}
	x := q.items.list[0]
	return x.value, x.prior, true
}

// PopAll drains the queue and returns its values best first.
func (q *Queue) PopAll() []interface{} {
	pulled := make([]interface{}, q.items.Len())
	for i := len(pulled) - 1; i >= 0; i-- {
		pulled[i] = heap.Pop(q.items).(*item).value
	}
	return pulled
}

// Full reports whether a capped queue holds cap items.
func (q *Queue) Full() bool {
	return q.cap >= 0 && q.items.Len() >= q.cap
}

func (q *Queue) Cap() int { return q.cap }

func (q *Queue) Len() int { return q.items.Len() }

func (q *Queue) better(p, p1 float64) bool {
	if q.order == orderAsc {
		return p < p1
	}
	return p > p1
}

// itemHeap keeps the worst item at index 0.
type itemHeap struct {
	order order
	list  []*item
}

func (h *itemHeap) Len() int { return len(h.list) }

func (h *itemHeap) Swap(i, j int) { h.list[i], h.list[j] = h.list[j], h.list[i] }

func (h *itemHeap) Less(i, j int) bool {
	if h.order == orderAsc {
		return h.list[i].prior > h.list[j].prior
	}
	return h.list[i].prior < h.list[j].prior
}

func (h *itemHeap) Push(x interface{}) {
	h.list = append(h.list, x.(*item))
}

func (h *itemHeap) Pop() interface{} {
	l := len(h.list) - 1
	x := h.list[l]
	h.list[l] = nil
	h.list = h.list[:l]
	return x
}
