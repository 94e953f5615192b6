package pqueue

import "iter"

// Queue is an ordered sequence facade over Heap. It adds destructive,
// consume-by-popping iteration and equality by consumption order.
//
// Like the heap it wraps, a Queue is a single-owner value.
type Queue[T any] struct {
	heap Heap[T]
}

// NewQueue creates an empty priority queue ordered by less.
func NewQueue[T any](less func(a, b T) bool) *Queue[T] {
	if less == nil {
		panic("pqueue: nil comparator")
	}
	return &Queue[T]{heap: Heap[T]{less: less}}
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return q.heap.Len() }

// Push enqueues v.
func (q *Queue[T]) Push(v T) { q.heap.Push(v) }

// Pop dequeues the highest-priority (smallest) element.
func (q *Queue[T]) Pop() (T, bool) { return q.heap.Pop() }

// Peek returns the highest-priority element without dequeuing it.
func (q *Queue[T]) Peek() (T, bool) { return q.heap.Peek() }

// Remove deletes some element equal to v. Absence is a normal outcome,
// reported as false.
func (q *Queue[T]) Remove(v T) bool { return q.heap.Remove(v) }

// RemoveFirstFunc deletes the first element matching the predicate.
func (q *Queue[T]) RemoveFirstFunc(match func(T) bool) (T, bool) {
	return q.heap.RemoveFirstFunc(match)
}

// Clone returns an independent copy with its own storage.
func (q *Queue[T]) Clone() *Queue[T] {
	return &Queue[T]{heap: *q.heap.Clone()}
}

// Drain iterates the queue in priority order by popping: iteration CONSUMES
// the queue, and draining to exhaustion empties it. Popping needs no extra
// memory, at the cost of the iteration being single-pass and irreversible.
// Use Sorted for a non-destructive traversal.
func (q *Queue[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := q.heap.Pop()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Sorted returns the queue's elements in priority order without consuming
// it, by draining an independent copy.
func (q *Queue[T]) Sorted() []T {
	c := q.heap.Clone()
	out := make([]T, 0, c.Len())
	for {
		v, ok := c.Pop()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Equal reports whether popping both queues would yield identical sequences.
// Neither queue is consumed; comparison runs over independent copies.
// Structural equality of the internal storage is irrelevant.
func (q *Queue[T]) Equal(other *Queue[T]) bool {
	if q.Len() != other.Len() {
		return false
	}
	a := q.heap.Clone()
	b := other.heap.Clone()
	for {
		av, aok := a.Pop()
		bv, bok := b.Pop()
		if !aok || !bok {
			return aok == bok
		}
		if !a.eq(av, bv) {
			return false
		}
	}
}
