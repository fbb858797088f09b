package pqueue

import (
	"container/heap"
	"fmt"
	"math"
)

// ID addresses a slot in the queue arena.
type ID int

// None marks a missing neighbour.
const None ID = -1

const compactFloor = 64

type slot[T any] struct {
	value    T
	priority float64
	seq      uint64
	prev     ID
	next     ID
	live     bool
}

type entry struct {
	id       ID
	priority float64
	seq      uint64
}

type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Extracted is the result of ExtractMin.
type Extracted[T any] struct {
	ID       ID
	Value    T
	Priority float64
	Prev     ID
	Next     ID
}

// Queue is a min-priority queue whose live elements also form a doubly
// linked chain in insertion order. The zero value is not usable; call New.
type Queue[T any] struct {
	slots []slot[T]
	free  []ID
	heap  entryHeap
	head  ID
	tail  ID
	live  int
	seq   uint64
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{head: None, tail: None}
}

// Len returns the number of live elements.
func (q *Queue[T]) Len() int { return q.live }

// Head returns the first live element of the chain, or None.
func (q *Queue[T]) Head() ID { return q.head }

// Tail returns the last live element of the chain, or None.
func (q *Queue[T]) Tail() ID { return q.tail }

// Push stores v with the given priority and links it after the current tail.
func (q *Queue[T]) Push(v T, priority float64) ID {
	id := q.alloc()
	q.seq++
	q.slots[id] = slot[T]{
		value:    v,
		priority: priority,
		seq:      q.seq,
		prev:     q.tail,
		next:     None,
		live:     true,
	}
	if q.tail != None {
		q.slots[q.tail].next = id
	} else {
		q.head = id
	}
	q.tail = id
	q.live++
	heap.Push(&q.heap, entry{id: id, priority: priority, seq: q.seq})
	return id
}

// Update changes the priority of a live element. The previous heap entry is
// left in place and discarded when it surfaces.
func (q *Queue[T]) Update(id ID, priority float64) {
	s := q.mustLive(id)
	q.seq++
	s.priority = priority
	s.seq = q.seq
	heap.Push(&q.heap, entry{id: id, priority: priority, seq: q.seq})
	q.maybeCompact()
}

// PeekMinPriority returns the lowest live priority, or +Inf when empty.
func (q *Queue[T]) PeekMinPriority() float64 {
	q.dropStale()
	if len(q.heap) == 0 {
		return math.Inf(1)
	}
	return q.heap[0].priority
}

// ExtractMin removes the live element with the lowest priority (oldest
// first on ties) and splices its neighbours together. The chain endpoints
// can never be extracted; trying to is a caller bug and panics.
func (q *Queue[T]) ExtractMin() Extracted[T] {
	q.dropStale()
	if len(q.heap) == 0 {
		panic("pqueue: ExtractMin on empty queue")
	}
	e := heap.Pop(&q.heap).(entry)
	s := &q.slots[e.id]
	if s.prev == None || s.next == None {
		panic(fmt.Sprintf("pqueue: extracting chain endpoint %d", e.id))
	}

	out := Extracted[T]{ID: e.id, Value: s.value, Priority: s.priority, Prev: s.prev, Next: s.next}
	q.slots[s.prev].next = s.next
	q.slots[s.next].prev = s.prev

	var zero T
	*s = slot[T]{value: zero, prev: None, next: None}
	q.free = append(q.free, e.id)
	q.live--
	return out
}

// Prev returns the chain predecessor of id, or None.
func (q *Queue[T]) Prev(id ID) ID { return q.mustLive(id).prev }

// Next returns the chain successor of id, or None.
func (q *Queue[T]) Next(id ID) ID { return q.mustLive(id).next }

// Value returns a copy of the element stored at id.
func (q *Queue[T]) Value(id ID) T { return q.mustLive(id).value }

// Ptr returns a pointer to the element stored at id. It is invalidated by
// the next Push.
func (q *Queue[T]) Ptr(id ID) *T { return &q.mustLive(id).value }

// Priority returns the current priority of id.
func (q *Queue[T]) Priority(id ID) float64 { return q.mustLive(id).priority }

// Values returns the live elements in chain order.
func (q *Queue[T]) Values() []T {
	out := make([]T, 0, q.live)
	for id := q.head; id != None; id = q.slots[id].next {
		out = append(out, q.slots[id].value)
	}
	return out
}

func (q *Queue[T]) alloc() ID {
	if n := len(q.free); n > 0 {
		id := q.free[n-1]
		q.free = q.free[:n-1]
		return id
	}
	q.slots = append(q.slots, slot[T]{})
	return ID(len(q.slots) - 1)
}

func (q *Queue[T]) mustLive(id ID) *slot[T] {
	if id < 0 || int(id) >= len(q.slots) || !q.slots[id].live {
		panic(fmt.Sprintf("pqueue: slot %d is not live", id))
	}
	return &q.slots[id]
}

func (q *Queue[T]) stale(e entry) bool {
	s := &q.slots[e.id]
	return !s.live || s.seq != e.seq
}

func (q *Queue[T]) dropStale() {
	for len(q.heap) > 0 && q.stale(q.heap[0]) {
		heap.Pop(&q.heap)
	}
}

func (q *Queue[T]) maybeCompact() {
	if len(q.heap)-q.live <= 2*q.live+compactFloor {
		return
	}
	h := q.heap[:0]
	for _, e := range q.heap {
		if !q.stale(e) {
			h = append(h, e)
		}
	}
	q.heap = h
	heap.Init(&q.heap)
}
