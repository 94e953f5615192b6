package constants

// Default buffer configuration constants
const (
	// DefaultBufferCapacity is the initial capacity of a buffer created
	// without an explicit size
	DefaultBufferCapacity = 256

	// MinStorageSize is the smallest backing block the allocator hands out.
	// Requests below this are rounded up so the pool buckets stay effective.
	MinStorageSize = 64

	// MaxBufferCapacity caps a single buffer's backing storage (1GB).
	// Growth beyond this is a capacity overflow error.
	MaxBufferCapacity = 1 << 30
)

// Allocator bucket sizes. Mid-size storage blocks are recycled through
// size-bucketed pools with power-of-2 sizes to balance memory efficiency
// with allocation reduction.
const (
	// PoolMinSize is the largest storage size still served straight from the
	// heap; pooling blocks this small costs more than it saves.
	PoolMinSize = 1024

	PoolBucket4K  = 4 * 1024
	PoolBucket16K = 16 * 1024
	PoolBucket64K = 64 * 1024

	// ArenaThreshold is the storage size at and above which blocks are
	// served from the page arena instead of the pools (128KB).
	ArenaThreshold = 128 * 1024
)
