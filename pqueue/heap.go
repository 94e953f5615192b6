// Package pqueue provides an indexed binary min-heap and the priority queue
// built on it, used by schedulers that need logarithmic removal of arbitrary
// delayed or cancelled work, not just root extraction.
package pqueue

import "fmt"

// Heap is an array-backed binary min-heap ordered by a strict less-than
// comparator. Position 0 holds the minimum; the parent of position i is at
// (i-1)/2, its children at 2i+1 and 2i+2, and storage has no gaps.
//
// Ties between equal elements break arbitrarily: there is no stability
// guarantee, and removal of a value only promises to remove some matching
// element. Equality is derived from the comparator: a matches b when neither
// sorts before the other.
//
// A Heap is a single-owner value; share by Clone or external locking only.
type Heap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// NewHeap creates an empty heap ordered by less, which must be a strict
// weak ordering.
func NewHeap[T any](less func(a, b T) bool) *Heap[T] {
	if less == nil {
		panic("pqueue: nil comparator")
	}
	return &Heap[T]{less: less}
}

// Len returns the number of stored elements.
func (h *Heap[T]) Len() int { return len(h.items) }

// Clone returns an independent copy with its own storage.
func (h *Heap[T]) Clone() *Heap[T] {
	items := make([]T, len(h.items))
	copy(items, h.items)
	return &Heap[T]{items: items, less: h.less}
}

// eq reports value equality under the comparator.
func (h *Heap[T]) eq(a, b T) bool {
	return !h.less(a, b) && !h.less(b, a)
}

// Push inserts v, restoring heap order by sifting it up.
func (h *Heap[T]) Push(v T) {
	h.items = append(h.items, v)
	h.siftUp(len(h.items) - 1)
}

// Peek returns the minimum without removing it.
func (h *Heap[T]) Peek() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// Pop removes and returns the minimum. Returns ok=false on an empty heap.
func (h *Heap[T]) Pop() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.removeAt(0), true
}

// Remove deletes some element equal to v under the comparator.
// Returns false if no element matches; absence is not an error.
func (h *Heap[T]) Remove(v T) bool {
	for i := range h.items {
		if h.eq(h.items[i], v) {
			h.removeAt(i)
			return true
		}
	}
	return false
}

// RemoveFirstFunc deletes the first element (in storage order) matching the
// predicate and returns it.
func (h *Heap[T]) RemoveFirstFunc(match func(T) bool) (T, bool) {
	for i := range h.items {
		if match(h.items[i]) {
			return h.removeAt(i), true
		}
	}
	var zero T
	return zero, false
}

// removeAt deletes the element at position i: swap with the last element,
// truncate, then restore order by sifting the swapped-in value up or down
// depending on how it compares against its would-be parent. Removing the
// last element is a plain truncate.
func (h *Heap[T]) removeAt(i int) T {
	n := len(h.items) - 1
	v := h.items[i]
	if i == n {
		var zero T
		h.items[n] = zero
		h.items = h.items[:n]
		return v
	}

	last := h.items[n]
	var zero T
	h.items[n] = zero
	h.items = h.items[:n]

	if i > 0 && h.less(last, h.items[(i-1)/2]) {
		h.liftUp(i, last)
	} else {
		h.items[i] = last
		h.siftDown(i)
	}
	return v
}

// liftUp places v at position i and sifts it toward the root. v must sort
// before or equal to the current occupant; calling it with a value that
// sorts strictly after is a programmer error.
func (h *Heap[T]) liftUp(i int, v T) {
	if h.less(h.items[i], v) {
		panic(fmt.Sprintf("pqueue: lift at %d with a value sorting after the occupant", i))
	}
	h.items[i] = v
	h.siftUp(i)
}

func (h *Heap[T]) siftUp(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(h.items[j], h.items[i]) {
			break
		}
		h.items[i], h.items[j] = h.items[j], h.items[i]
		j = i
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(h.items[j2], h.items[j1]) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(h.items[j], h.items[i]) {
			break
		}
		h.items[i], h.items[j] = h.items[j], h.items[i]
		i = j
	}
}
