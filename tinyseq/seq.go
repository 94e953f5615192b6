// Package tinyseq provides a small-size-optimized sequence that stores a
// single element inline and only moves to heap storage beyond that. Runtime
// code is full of "zero or one" collections (pending writes on a channel,
// listeners on an event) and this container makes the common case
// allocation-free.
package tinyseq

import (
	"fmt"
	"hash/maphash"
	"iter"
	"sort"
)

// Seq is a finite sequence of comparable elements. Internally it is a tagged
// union: either exactly one element stored inline, or an arbitrary-length
// backing slice. The distinction is invisible to counting, iteration,
// equality, and hashing; it exists purely to avoid allocating for the
// overwhelmingly common single-element case.
//
// The inline variant always holds exactly one element. Every mutation that
// would make the count differ from one funnels through a single promotion
// point that switches to the slice variant.
//
// The zero value is an empty sequence. Seq is a single-owner value; use
// Clone to hand a copy elsewhere.
type Seq[T comparable] struct {
	one    T
	many   []T
	inline bool
}

// Of builds a sequence from the given elements.
func Of[T comparable](items ...T) Seq[T] {
	switch len(items) {
	case 0:
		return Seq[T]{}
	case 1:
		return Seq[T]{one: items[0], inline: true}
	default:
		many := make([]T, len(items))
		copy(many, items)
		return Seq[T]{many: many}
	}
}

// FromSlice builds a sequence from a copy of s.
func FromSlice[T comparable](s []T) Seq[T] {
	return Of(s...)
}

// Collect builds a sequence from an iterator. A single-element source stays
// inline; anything else lands in slice storage.
func Collect[T comparable](src iter.Seq[T]) Seq[T] {
	var s Seq[T]
	for v := range src {
		s.Append(v)
	}
	return s
}

// TryCollect builds a sequence from a fallible iterator. The first error
// aborts construction immediately and no partial sequence is returned.
func TryCollect[T comparable](src iter.Seq2[T, error]) (Seq[T], error) {
	var s Seq[T]
	for v, err := range src {
		if err != nil {
			return Seq[T]{}, err
		}
		s.Append(v)
	}
	return s, nil
}

// Len returns the number of elements.
func (s *Seq[T]) Len() int {
	if s.inline {
		return 1
	}
	return len(s.many)
}

// At returns the element at index i. Out-of-range indexes are a programmer
// error and panic.
func (s *Seq[T]) At(i int) T {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("tinyseq: index %d out of range [0, %d)", i, s.Len()))
	}
	if s.inline {
		return s.one
	}
	return s.many[i]
}

// promote switches to slice storage with room for the inline element plus
// extra more. All representation changes go through here or demote.
func (s *Seq[T]) promote(extra int) {
	if !s.inline {
		return
	}
	many := make([]T, 1, 1+extra)
	many[0] = s.one
	var zero T
	s.one = zero
	s.many = many
	s.inline = false
}

// demote collapses a one-element slice back to inline storage.
func (s *Seq[T]) demote() {
	if s.inline || len(s.many) != 1 {
		return
	}
	s.one = s.many[0]
	s.many = nil
	s.inline = true
}

// Append adds v at the end. An empty sequence becomes inline; appending to
// an inline sequence promotes it.
func (s *Seq[T]) Append(v T) {
	if !s.inline && len(s.many) == 0 {
		s.one = v
		s.many = nil
		s.inline = true
		return
	}
	s.promote(1)
	s.many = append(s.many, v)
}

// AppendSeq adds all of src at the end. Appending an empty source to an
// inline sequence is a no-op and does not change representation.
func (s *Seq[T]) AppendSeq(src iter.Seq[T]) {
	for v := range src {
		s.Append(v)
	}
}

// AppendSlice adds all of p at the end.
func (s *Seq[T]) AppendSlice(p []T) {
	if len(p) == 0 {
		return
	}
	if !s.inline && len(s.many) == 0 && len(p) == 1 {
		s.Append(p[0])
		return
	}
	s.promote(len(p))
	s.many = append(s.many, p...)
}

// RemoveAt deletes and returns the element at index i, preserving order.
func (s *Seq[T]) RemoveAt(i int) T {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("tinyseq: index %d out of range [0, %d)", i, s.Len()))
	}
	if s.inline {
		v := s.one
		var zero T
		s.one = zero
		s.inline = false
		return v
	}
	v := s.many[i]
	s.many = append(s.many[:i], s.many[i+1:]...)
	s.demote()
	return v
}

// RemoveAll deletes every element matching the predicate and returns how
// many were removed. The inline variant evaluates the predicate directly
// without allocating backing storage.
func (s *Seq[T]) RemoveAll(match func(T) bool) int {
	if s.inline {
		if match(s.one) {
			var zero T
			s.one = zero
			s.inline = false
			return 1
		}
		return 0
	}
	kept := s.many[:0]
	removed := 0
	for _, v := range s.many {
		if match(v) {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	var zero T
	for i := len(kept); i < len(s.many); i++ {
		s.many[i] = zero
	}
	s.many = kept
	s.demote()
	return removed
}

// SortFunc sorts the sequence by less. A zero- or one-element sequence is
// already sorted and no storage is touched.
func (s *Seq[T]) SortFunc(less func(a, b T) bool) {
	if s.Len() < 2 {
		return
	}
	sort.Slice(s.many, func(i, j int) bool { return less(s.many[i], s.many[j]) })
}

// All iterates elements keyed by index.
func (s *Seq[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if s.inline {
			yield(0, s.one)
			return
		}
		for i, v := range s.many {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Slice returns an independent copy of the elements.
func (s *Seq[T]) Slice() []T {
	out := make([]T, 0, s.Len())
	for _, v := range s.All() {
		out = append(out, v)
	}
	return out
}

// Clone returns an independent copy.
func (s *Seq[T]) Clone() Seq[T] {
	c := *s
	if !c.inline {
		c.many = append([]T(nil), s.many...)
	}
	return c
}

// Equal reports whether two sequences hold the same elements in the same
// order, regardless of representation: a one-element slice-backed sequence
// equals the inline sequence holding that element.
func (s *Seq[T]) Equal(other *Seq[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, v := range s.All() {
		if other.At(i) != v {
			return false
		}
	}
	return true
}

// Hash returns a seeded hash of the sequence's elements in order. Sequences
// that compare Equal hash equal, whatever their representation.
func (s *Seq[T]) Hash(seed maphash.Seed) uint64 {
	// FNV-style chaining over per-element hashes keeps the result
	// order-sensitive.
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	for _, v := range s.All() {
		h ^= maphash.Comparable(seed, v)
		h *= prime
	}
	return h
}
