package niokit

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"iter"
)

// ByteBufferView is a bounded window [start, end) over a shared ByteBuffer.
// It behaves as a mutable, range-replaceable random-access byte sequence
// without owning separate storage: reads and writes go straight through to
// the underlying buffer, so two views over the same buffer observe each
// other's writes.
//
// All indexes are absolute buffer indexes: the first element of the view
// lives at index Start(), not 0. Out-of-range access is a programmer error
// and panics; there is no recoverable "index error" on a view.
type ByteBufferView struct {
	buf   *ByteBuffer
	start int
	end   int
}

// ViewOf returns a view over the buffer's readable region.
func ViewOf(b *ByteBuffer) ByteBufferView {
	return ByteBufferView{buf: b, start: b.readerIndex, end: b.writerIndex}
}

// ViewAt returns a view over the explicit range [start, end).
// The range must lie within the buffer's capacity.
func (b *ByteBuffer) ViewAt(start, end int) ByteBufferView {
	if start < 0 || start > end || end > b.capacity {
		panic(fmt.Sprintf("niokit: view range [%d, %d) outside buffer capacity %d", start, end, b.capacity))
	}
	return ByteBufferView{buf: b, start: start, end: end}
}

// Buffer returns the underlying shared buffer.
func (v ByteBufferView) Buffer() *ByteBuffer { return v.buf }

// Start returns the view's lower bound (the index of its first byte).
func (v ByteBufferView) Start() int { return v.start }

// End returns the view's exclusive upper bound.
func (v ByteBufferView) End() int { return v.end }

// Len returns the number of bytes in the view.
func (v ByteBufferView) Len() int { return v.end - v.start }

func (v ByteBufferView) mustContain(i int) {
	if i < v.start || i >= v.end {
		panic(fmt.Sprintf("niokit: index %d outside view range [%d, %d)", i, v.start, v.end))
	}
}

// At returns the byte at the given absolute index.
func (v ByteBufferView) At(i int) byte {
	v.mustContain(i)
	return v.buf.byteAt(i)
}

// SetAt overwrites the byte at the given absolute index in place.
func (v ByteBufferView) SetAt(i int, b byte) {
	v.mustContain(i)
	v.buf.SetUint8(b, i)
}

// SubView returns a narrower view [a, b) sharing the same buffer.
func (v ByteBufferView) SubView(a, b int) ByteBufferView {
	if a < v.start || a > b || b > v.end {
		panic(fmt.Sprintf("niokit: subview range [%d, %d) outside view range [%d, %d)", a, b, v.start, v.end))
	}
	return ByteBufferView{buf: v.buf, start: a, end: b}
}

// Append writes a single byte at the view's upper bound, widening the view
// and advancing the buffer's writer cursor in lockstep when the write lands
// at or past it.
func (v *ByteBufferView) Append(b byte) {
	v.buf.SetUint8(b, v.end)
	v.end++
	if v.buf.writerIndex < v.end {
		v.buf.MoveWriterIndex(v.end)
	}
}

// AppendBytes writes p at the view's upper bound, widening the view by
// len(p) and advancing the buffer's writer cursor in lockstep.
func (v *ByteBufferView) AppendBytes(p []byte) {
	n := v.buf.SetBytes(p, v.end)
	v.end += n
	if v.buf.writerIndex < v.end {
		v.buf.MoveWriterIndex(v.end)
	}
}

// ReplaceSubrange replaces the view's bytes in [a, b) with p, shifting the
// trailing written bytes of the buffer when the replacement and the replaced
// range differ in length. The writer cursor and the view's range move in
// lockstep with the shift. Shifts are overlap-safe.
func (v *ByteBufferView) ReplaceSubrange(a, b int, p []byte) {
	if a < v.start || a > b || b > v.end {
		panic(fmt.Sprintf("niokit: replace range [%d, %d) outside view range [%d, %d)", a, b, v.start, v.end))
	}

	m := b - a
	n := len(p)

	switch {
	case n == m:
		// Same length: overwrite in place.
		v.buf.SetBytes(p, a)

	case n < m:
		// Shrink: overwrite first, then pull the tail down.
		v.buf.SetBytes(p, a)
		tail := v.buf.writerIndex - b
		if err := v.buf.CopyBytes(b, a+n, tail); err != nil {
			panic(fmt.Sprintf("niokit: replace-subrange shift failed: %v", err))
		}
		defaultMetrics.RecordShift(uint64(tail))
		v.buf.MoveWriterIndex(v.buf.writerIndex - (m - n))
		v.end -= m - n

	default:
		// Grow: push the tail up to make room, then overwrite.
		delta := n - m
		tail := v.buf.writerIndex - b
		v.buf.ReserveCapacity(v.buf.writerIndex + delta)
		v.buf.MoveWriterIndex(v.buf.writerIndex + delta)
		if tail > 0 {
			if err := v.buf.CopyBytes(b, b+delta, tail); err != nil {
				panic(fmt.Sprintf("niokit: replace-subrange shift failed: %v", err))
			}
			defaultMetrics.RecordShift(uint64(tail))
		}
		v.buf.SetBytes(p, a)
		v.end += delta
	}
}

// Equal reports whether two views have ranges of equal length and content.
// Comparison is by value over independent copies, never by position or
// buffer identity.
func (v ByteBufferView) Equal(other ByteBufferView) bool {
	if v.Len() != other.Len() {
		return false
	}
	return bytes.Equal(v.Bytes(), other.Bytes())
}

// Hash64 returns an FNV-1a hash of the view's content.
// Views that compare Equal hash equal.
func (v ByteBufferView) Hash64() uint64 {
	h := fnv.New64a()
	h.Write(v.buf.region()[v.start:v.end])
	return h.Sum64()
}

// Bytes returns an independent copy of the viewed range.
func (v ByteBufferView) Bytes() []byte {
	out := make([]byte, v.Len())
	copy(out, v.buf.region()[v.start:v.end])
	return out
}

// CopyTo fills dst from the view and returns the number of bytes written,
// which is min(len(dst), v.Len()).
func (v ByteBufferView) CopyTo(dst []byte) int {
	return copy(dst, v.buf.region()[v.start:v.end])
}

// All iterates the view's bytes keyed by absolute index. Reading a view
// never consumes it.
func (v ByteBufferView) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i := v.start; i < v.end; i++ {
			if !yield(i, v.buf.byteAt(i)) {
				return
			}
		}
	}
}

// BufferFromView constructs a standalone buffer by copying exactly v.Len()
// bytes starting at v.Start(). The result shares nothing with v's buffer.
func BufferFromView(v ByteBufferView) *ByteBuffer {
	b := NewByteBuffer(v.Len())
	b.WriteBytes(v.buf.region()[v.start:v.end])
	return b
}
