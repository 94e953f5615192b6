// Package alloc hands out backing storage blocks for byte buffers.
//
// Small blocks come straight from the Go heap, mid-size blocks are recycled
// through size-bucketed sync.Pools, and large blocks are served by a page
// arena (anonymous mmap on Linux, plain heap elsewhere).
package alloc

import (
	"sync"

	"github.com/niokit/niokit/internal/constants"
)

// Kind identifies where a storage block came from, so Free can route it back.
type Kind uint8

const (
	// KindHeap blocks come from make() and are left to the garbage collector.
	KindHeap Kind = iota
	// KindPool blocks are recycled through the size-bucketed pools.
	KindPool
	// KindArena blocks are page-arena mappings and must be returned to it.
	KindArena
)

// Observer receives allocator events for metrics collection.
type Observer interface {
	OnAlloc(size int, kind Kind)
	OnFree(size int, kind Kind)
	OnPoolRecycle(size int)
}

// NoOpObserver is an Observer that does nothing.
type NoOpObserver struct{}

func (NoOpObserver) OnAlloc(size int, kind Kind) {}
func (NoOpObserver) OnFree(size int, kind Kind)  {}
func (NoOpObserver) OnPoolRecycle(size int)      {}

var (
	obsMu    sync.RWMutex
	observer Observer = NoOpObserver{}
)

// SetObserver installs the allocator event observer.
func SetObserver(o Observer) {
	obsMu.Lock()
	defer obsMu.Unlock()
	if o == nil {
		o = NoOpObserver{}
	}
	observer = o
}

func notify(fn func(Observer)) {
	obsMu.RLock()
	o := observer
	obsMu.RUnlock()
	fn(o)
}

// Alloc returns a zeroed block with capacity of at least size bytes.
// The returned slice's length equals its capacity, which may exceed size.
func Alloc(size int) ([]byte, Kind) {
	if size < constants.MinStorageSize {
		size = constants.MinStorageSize
	}

	if size >= constants.ArenaThreshold {
		if b, ok := arenaAlloc(size); ok {
			notify(func(o Observer) { o.OnAlloc(len(b), KindArena) })
			return b, KindArena
		}
		// Arena unavailable on this platform; fall through to the heap.
		b := make([]byte, size)
		notify(func(o Observer) { o.OnAlloc(size, KindHeap) })
		return b, KindHeap
	}

	if size <= constants.PoolMinSize || size > constants.PoolBucket64K {
		// Too small to be worth pooling, or between the largest bucket and
		// the arena threshold.
		b := make([]byte, size)
		notify(func(o Observer) { o.OnAlloc(size, KindHeap) })
		return b, KindHeap
	}

	b := poolGet(size)
	notify(func(o Observer) { o.OnAlloc(len(b), KindPool) })
	return b, KindPool
}

// Free returns a block to its origin. Heap blocks are dropped for the GC,
// pool blocks are zeroed and recycled, arena blocks are unmapped.
func Free(buf []byte, kind Kind) {
	if buf == nil {
		return
	}
	size := cap(buf)

	switch kind {
	case KindPool:
		poolPut(buf)
		notify(func(o Observer) { o.OnPoolRecycle(size) })
	case KindArena:
		arenaFree(buf)
	}

	notify(func(o Observer) { o.OnFree(size, kind) })
}
