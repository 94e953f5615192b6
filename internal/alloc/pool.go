package alloc

import (
	"sync"

	"github.com/niokit/niokit/internal/constants"
)

// Size-bucketed pools with power-of-2 sizes (4KB, 16KB, 64KB) recycle
// mid-size storage blocks. Blocks below PoolMinSize go straight to the heap
// and blocks at or above ArenaThreshold go to the page arena, so the pools
// only ever see the middle band.
//
// Uses *[]byte pattern to avoid sync.Pool interface allocation overhead.

// globalPool is the shared storage pool for all buffers.
var globalPool = struct {
	pool4k  sync.Pool
	pool16k sync.Pool
	pool64k sync.Pool
}{
	pool4k:  sync.Pool{New: func() any { b := make([]byte, constants.PoolBucket4K); return &b }},
	pool16k: sync.Pool{New: func() any { b := make([]byte, constants.PoolBucket16K); return &b }},
	pool64k: sync.Pool{New: func() any { b := make([]byte, constants.PoolBucket64K); return &b }},
}

// poolGet returns a zeroed block from the smallest bucket that fits size.
// Callers receive the bucket's full capacity.
func poolGet(size int) []byte {
	var b []byte
	switch {
	case size <= constants.PoolBucket4K:
		b = *globalPool.pool4k.Get().(*[]byte)
	case size <= constants.PoolBucket16K:
		b = *globalPool.pool16k.Get().(*[]byte)
	default:
		b = *globalPool.pool64k.Get().(*[]byte)
	}

	// Recycled blocks carry stale bytes; buffers assume zeroed storage.
	clear(b)
	return b
}

// poolPut returns a block to its bucket.
// The block's capacity determines which pool it goes to.
func poolPut(buf []byte) {
	c := cap(buf)
	// Restore full capacity before returning to pool
	buf = buf[:c]
	switch c {
	case constants.PoolBucket4K:
		globalPool.pool4k.Put(&buf)
	case constants.PoolBucket16K:
		globalPool.pool16k.Put(&buf)
	case constants.PoolBucket64K:
		globalPool.pool64k.Put(&buf)
		// Blocks with non-standard capacity are not returned to pool
	}
}
