package niokit

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/niokit/niokit/internal/alloc"
	"github.com/niokit/niokit/internal/constants"
	"github.com/niokit/niokit/internal/logging"
)

// storage is a refcounted backing block shared between buffer clones and
// slices. The count only guards copy-on-write; it is not a lock, and a single
// buffer must not be mutated from multiple goroutines.
type storage struct {
	bytes []byte
	kind  alloc.Kind
	refs  atomic.Int32
}

func newStorage(capacity int) *storage {
	b, kind := alloc.Alloc(capacity)
	s := &storage{bytes: b, kind: kind}
	s.refs.Store(1)
	if kind == alloc.KindArena {
		// Arena mappings must be unmapped even when the last holder is
		// simply dropped and collected.
		runtime.SetFinalizer(s, (*storage).finalize)
	}
	return s
}

func (s *storage) retain() {
	s.refs.Add(1)
}

func (s *storage) release() {
	if s.refs.Add(-1) != 0 {
		return
	}
	if s.kind == alloc.KindArena {
		runtime.SetFinalizer(s, nil)
	}
	alloc.Free(s.bytes, s.kind)
	s.bytes = nil
}

func (s *storage) finalize() {
	alloc.Free(s.bytes, s.kind)
	s.bytes = nil
}

// ByteBuffer is a growable, shareable byte store with reader and writer
// cursors. Clones and slices share storage copy-on-write: copying is cheap,
// and backing bytes are duplicated only on the first divergent mutation.
//
// Indexes passed to Get*/Set*/CopyBytes are absolute buffer indexes,
// independent of the reader cursor. The invariant
// 0 <= readerIndex <= writerIndex <= capacity always holds; violating it
// through Move*Index is a programmer error and panics.
//
// A ByteBuffer is a single-owner value: share it across goroutines only via
// Clone, or guard it with external synchronization.
type ByteBuffer struct {
	store       *storage
	origin      int // offset of buffer index 0 within store.bytes
	capacity    int
	readerIndex int
	writerIndex int
}

// NewByteBuffer creates an empty buffer with at least the given capacity.
// A capacity of 0 picks the default. Negative or absurd capacities panic.
func NewByteBuffer(capacity int) *ByteBuffer {
	if capacity < 0 {
		panic(fmt.Sprintf("niokit: negative buffer capacity %d", capacity))
	}
	if capacity > constants.MaxBufferCapacity {
		panic(fmt.Sprintf("niokit: buffer capacity %d exceeds maximum %d", capacity, constants.MaxBufferCapacity))
	}
	if capacity == 0 {
		capacity = constants.DefaultBufferCapacity
	}
	s := newStorage(capacity)
	return &ByteBuffer{
		store:    s,
		capacity: len(s.bytes),
	}
}

// BufferOf creates a buffer containing a copy of p, ready for reading.
func BufferOf(p []byte) *ByteBuffer {
	b := NewByteBuffer(len(p))
	b.WriteBytes(p)
	return b
}

// Clone returns a logically independent copy sharing storage until either
// side mutates.
func (b *ByteBuffer) Clone() *ByteBuffer {
	b.store.retain()
	c := *b
	return &c
}

// Cap returns the buffer's current capacity.
func (b *ByteBuffer) Cap() int { return b.capacity }

// ReaderIndex returns the reader cursor.
func (b *ByteBuffer) ReaderIndex() int { return b.readerIndex }

// WriterIndex returns the writer cursor.
func (b *ByteBuffer) WriterIndex() int { return b.writerIndex }

// ReadableBytes returns the number of bytes between the cursors.
func (b *ByteBuffer) ReadableBytes() int { return b.writerIndex - b.readerIndex }

// WritableBytes returns the capacity remaining past the writer cursor.
func (b *ByteBuffer) WritableBytes() int { return b.capacity - b.writerIndex }

// Reset moves both cursors back to zero. Storage is kept.
func (b *ByteBuffer) Reset() {
	b.readerIndex = 0
	b.writerIndex = 0
}

func (b *ByteBuffer) String() string {
	return fmt.Sprintf("ByteBuffer{r:%d w:%d cap:%d}", b.readerIndex, b.writerIndex, b.capacity)
}

// region returns the buffer's live byte window within the shared block.
func (b *ByteBuffer) region() []byte {
	return b.store.bytes[b.origin : b.origin+b.capacity]
}

// ensureUnique duplicates the backing storage if it is shared, so the coming
// mutation cannot be observed through other clones or slices.
func (b *ByteBuffer) ensureUnique() {
	refs := b.store.refs.Load()
	if refs == 1 {
		return
	}
	s := newStorage(b.capacity)
	copy(s.bytes, b.region())
	defaultMetrics.RecordCoW(uint64(b.capacity))
	logging.Default().CopyOnWrite(b.capacity, int(refs))
	b.store.release()
	b.store = s
	b.origin = 0
}

// ReserveCapacity grows the buffer so that at least n bytes of capacity are
// available. Growth is power-of-two rounded. Shrinking never happens.
func (b *ByteBuffer) ReserveCapacity(n int) {
	if n < 0 {
		panic(fmt.Sprintf("niokit: negative reserve %d", n))
	}
	if n > constants.MaxBufferCapacity {
		panic(fmt.Sprintf("niokit: reserve %d exceeds maximum capacity %d", n, constants.MaxBufferCapacity))
	}
	if n <= b.capacity {
		return
	}

	newCap := b.capacity
	if newCap < constants.DefaultBufferCapacity {
		newCap = constants.DefaultBufferCapacity
	}
	for newCap < n {
		newCap *= 2
	}
	if newCap > constants.MaxBufferCapacity {
		newCap = constants.MaxBufferCapacity
	}

	s := newStorage(newCap)
	copy(s.bytes, b.region())
	b.store.release()
	b.store = s
	b.origin = 0
	b.capacity = len(s.bytes)
	defaultMetrics.RecordReserve()
}

// mutable prepares the buffer for a write touching indexes [0, end): grows
// capacity as needed and unshares storage.
func (b *ByteBuffer) mutable(end int) {
	b.ReserveCapacity(end)
	b.ensureUnique()
}

// MoveWriterIndex repositions the writer cursor. Moving it outside
// [readerIndex, capacity] is a programmer error and panics.
func (b *ByteBuffer) MoveWriterIndex(to int) {
	if to < b.readerIndex || to > b.capacity {
		panic(fmt.Sprintf("niokit: writer index %d outside [%d, %d]", to, b.readerIndex, b.capacity))
	}
	b.writerIndex = to
}

// MoveReaderIndex repositions the reader cursor. Moving it outside
// [0, writerIndex] is a programmer error and panics.
func (b *ByteBuffer) MoveReaderIndex(to int) {
	if to < 0 || to > b.writerIndex {
		panic(fmt.Sprintf("niokit: reader index %d outside [0, %d]", to, b.writerIndex))
	}
	b.readerIndex = to
}

// SetBytes copies p into the buffer at the given absolute index, growing
// capacity as needed, and returns the number of bytes written. The writer
// cursor does not move.
func (b *ByteBuffer) SetBytes(p []byte, at int) int {
	if at < 0 {
		panic(fmt.Sprintf("niokit: negative buffer index %d", at))
	}
	if len(p) == 0 {
		return 0
	}
	b.mutable(at + len(p))
	return copy(b.region()[at:], p)
}

// CopyBytes copies length bytes within the buffer from absolute index at to
// absolute index to. Overlapping ranges are handled safely. The source must
// lie within the written region and the destination within capacity;
// violations are reported as recoverable errors because callers routinely
// compute these ranges from untrusted lengths.
func (b *ByteBuffer) CopyBytes(at, to, length int) error {
	if length < 0 {
		return NewIndexError("copy_bytes", ErrCodeInvalidLength, length)
	}
	if at < 0 || at+length > b.writerIndex {
		return NewIndexError("copy_bytes", ErrCodeOutOfRange, at)
	}
	if to < 0 || to+length > b.capacity {
		return NewIndexError("copy_bytes", ErrCodeOutOfRange, to)
	}
	if length == 0 || at == to {
		return nil
	}
	b.ensureUnique()
	region := b.region()
	copy(region[to:to+length], region[at:at+length])
	return nil
}

// WriteBytes appends p at the writer cursor and advances it.
// Returns the number of bytes written.
func (b *ByteBuffer) WriteBytes(p []byte) int {
	n := b.SetBytes(p, b.writerIndex)
	b.writerIndex += n
	return n
}

// ReadBytes consumes and returns the next n bytes as an independent copy,
// advancing the reader cursor.
func (b *ByteBuffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, NewIndexError("read_bytes", ErrCodeInvalidLength, n)
	}
	if n > b.ReadableBytes() {
		return nil, NewError("read_bytes", ErrCodeTruncated,
			fmt.Sprintf("need %d bytes, %d readable", n, b.ReadableBytes()))
	}
	out := make([]byte, n)
	copy(out, b.region()[b.readerIndex:b.readerIndex+n])
	b.readerIndex += n
	return out, nil
}

// Bytes returns an independent copy of the readable region.
func (b *ByteBuffer) Bytes() []byte {
	out := make([]byte, b.ReadableBytes())
	copy(out, b.region()[b.readerIndex:b.writerIndex])
	return out
}

// GetSlice returns an independent copy-on-write sub-buffer over length bytes
// starting at the given absolute index. The slice shares storage with this
// buffer until either side mutates. Returns false if the range is not fully
// within the written region.
func (b *ByteBuffer) GetSlice(at, length int) (*ByteBuffer, bool) {
	if at < 0 || length < 0 || at+length > b.writerIndex {
		return nil, false
	}
	b.store.retain()
	return &ByteBuffer{
		store:       b.store,
		origin:      b.origin + at,
		capacity:    length,
		readerIndex: 0,
		writerIndex: length,
	}, true
}

// byteAt reads a single byte without cursor checks. The caller has already
// validated the index against its own range.
func (b *ByteBuffer) byteAt(i int) byte {
	return b.store.bytes[b.origin+i]
}
