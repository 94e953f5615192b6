package alloc

import (
	"os"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niokit/niokit/internal/constants"
)

type recordingObserver struct {
	mu       sync.Mutex
	allocs   map[Kind]int
	frees    map[Kind]int
	recycles int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		allocs: make(map[Kind]int),
		frees:  make(map[Kind]int),
	}
}

func (o *recordingObserver) OnAlloc(size int, kind Kind) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.allocs[kind]++
}

func (o *recordingObserver) OnFree(size int, kind Kind) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.frees[kind]++
}

func (o *recordingObserver) OnPoolRecycle(size int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recycles++
}

func (o *recordingObserver) counts() (map[Kind]int, map[Kind]int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	allocs := make(map[Kind]int, len(o.allocs))
	for k, v := range o.allocs {
		allocs[k] = v
	}
	frees := make(map[Kind]int, len(o.frees))
	for k, v := range o.frees {
		frees[k] = v
	}
	return allocs, frees, o.recycles
}

func TestAllocRouting(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		want    Kind
		minSize int
	}{
		{"tiny rounds up", 1, KindHeap, constants.MinStorageSize},
		{"small stays on heap", constants.PoolMinSize, KindHeap, constants.PoolMinSize},
		{"mid goes to pool", 2048, KindPool, constants.PoolBucket4K},
		{"bucket boundary", constants.PoolBucket4K + 1, KindPool, constants.PoolBucket16K},
		{"largest bucket", constants.PoolBucket64K, KindPool, constants.PoolBucket64K},
		{"between bucket and arena", constants.PoolBucket64K + 1, KindHeap, constants.PoolBucket64K + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, kind := Alloc(tt.size)
			assert.Equal(t, tt.want, kind)
			assert.GreaterOrEqual(t, len(b), tt.minSize)
			Free(b, kind)
		})
	}
}

func TestAllocArenaThreshold(t *testing.T) {
	b, kind := Alloc(constants.ArenaThreshold)
	defer Free(b, kind)

	if runtime.GOOS == "linux" {
		assert.Equal(t, KindArena, kind)
		// Arena blocks are page-rounded
		assert.Equal(t, 0, len(b)%os.Getpagesize())
	} else {
		assert.Equal(t, KindHeap, kind)
	}
	assert.GreaterOrEqual(t, len(b), constants.ArenaThreshold)
}

func TestAllocReturnsZeroed(t *testing.T) {
	// Dirty a pooled block, return it, and check the next block is clean.
	b, kind := Alloc(4096)
	require.Equal(t, KindPool, kind)
	for i := range b {
		b[i] = 0xff
	}
	Free(b, kind)

	c, kind := Alloc(4096)
	defer Free(c, kind)
	for i, v := range c {
		require.Zerof(t, v, "stale byte at %d", i)
	}
}

func TestObserverEvents(t *testing.T) {
	obs := newRecordingObserver()
	SetObserver(obs)
	defer SetObserver(nil)

	b, kind := Alloc(4096)
	Free(b, kind)

	allocs, frees, recycles := obs.counts()
	assert.Equal(t, 1, allocs[KindPool])
	assert.Equal(t, 1, frees[KindPool])
	assert.Equal(t, 1, recycles)

	h, kind := Alloc(16)
	Free(h, kind)
	allocs, frees, _ = obs.counts()
	assert.Equal(t, 1, allocs[KindHeap])
	assert.Equal(t, 1, frees[KindHeap])
}

func TestFreeNil(t *testing.T) {
	// Must not panic
	Free(nil, KindPool)
	Free(nil, KindArena)
}
