package niokit

import (
	"sync/atomic"
	"time"

	"github.com/niokit/niokit/internal/alloc"
)

// Metrics tracks storage and copy statistics for the collections core
type Metrics struct {
	// Allocation counters, by storage kind
	HeapAllocs  atomic.Uint64 // Blocks served straight from the Go heap
	PoolAllocs  atomic.Uint64 // Blocks served from the size-bucketed pools
	ArenaAllocs atomic.Uint64 // Blocks served from the page arena

	// Byte counters
	AllocBytes atomic.Uint64 // Total storage bytes handed out
	FreedBytes atomic.Uint64 // Total storage bytes returned

	// Recycling
	PoolRecycles atomic.Uint64 // Blocks returned to a pool bucket
	Frees        atomic.Uint64 // Total blocks returned

	// Copy-on-write and shifting
	CoWCopies  atomic.Uint64 // Storage duplications on divergent mutation
	CoWBytes   atomic.Uint64 // Bytes duplicated by copy-on-write
	ShiftOps   atomic.Uint64 // Replace-subrange tail shifts
	ShiftBytes atomic.Uint64 // Bytes moved by tail shifts
	Reserves   atomic.Uint64 // Capacity growth operations

	// Lifecycle
	StartTime atomic.Int64 // Metrics start timestamp (UnixNano)
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.StartTime.Store(time.Now().UnixNano())
	return m
}

// RecordAlloc records an allocation of a block of the given kind
func (m *Metrics) RecordAlloc(size uint64, kind alloc.Kind) {
	switch kind {
	case alloc.KindPool:
		m.PoolAllocs.Add(1)
	case alloc.KindArena:
		m.ArenaAllocs.Add(1)
	default:
		m.HeapAllocs.Add(1)
	}
	m.AllocBytes.Add(size)
}

// RecordFree records a block being returned
func (m *Metrics) RecordFree(size uint64) {
	m.Frees.Add(1)
	m.FreedBytes.Add(size)
}

// RecordPoolRecycle records a block going back into a pool bucket
func (m *Metrics) RecordPoolRecycle() {
	m.PoolRecycles.Add(1)
}

// RecordCoW records a copy-on-write storage duplication
func (m *Metrics) RecordCoW(bytes uint64) {
	m.CoWCopies.Add(1)
	m.CoWBytes.Add(bytes)
}

// RecordShift records a replace-subrange tail shift
func (m *Metrics) RecordShift(bytes uint64) {
	m.ShiftOps.Add(1)
	m.ShiftBytes.Add(bytes)
}

// RecordReserve records a capacity growth operation
func (m *Metrics) RecordReserve() {
	m.Reserves.Add(1)
}

// MetricsSnapshot is a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	// Allocations by kind
	HeapAllocs  uint64
	PoolAllocs  uint64
	ArenaAllocs uint64
	TotalAllocs uint64

	// Bytes
	AllocBytes uint64
	FreedBytes uint64
	LiveBytes  uint64

	// Recycling
	PoolRecycles uint64
	Frees        uint64

	// Copy-on-write and shifting
	CoWCopies  uint64
	CoWBytes   uint64
	ShiftOps   uint64
	ShiftBytes uint64
	Reserves   uint64

	// Computed statistics
	UptimeNs       uint64
	AllocRate      float64 // Allocations per second
	PoolShare      float64 // Fraction of allocations served by the pools
	CoWBytesPerMut float64 // Average bytes duplicated per copy-on-write
}

// Snapshot creates a point-in-time snapshot of metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		HeapAllocs:   m.HeapAllocs.Load(),
		PoolAllocs:   m.PoolAllocs.Load(),
		ArenaAllocs:  m.ArenaAllocs.Load(),
		AllocBytes:   m.AllocBytes.Load(),
		FreedBytes:   m.FreedBytes.Load(),
		PoolRecycles: m.PoolRecycles.Load(),
		Frees:        m.Frees.Load(),
		CoWCopies:    m.CoWCopies.Load(),
		CoWBytes:     m.CoWBytes.Load(),
		ShiftOps:     m.ShiftOps.Load(),
		ShiftBytes:   m.ShiftBytes.Load(),
		Reserves:     m.Reserves.Load(),
	}

	snap.TotalAllocs = snap.HeapAllocs + snap.PoolAllocs + snap.ArenaAllocs
	if snap.AllocBytes >= snap.FreedBytes {
		snap.LiveBytes = snap.AllocBytes - snap.FreedBytes
	}

	uptime := time.Now().UnixNano() - m.StartTime.Load()
	if uptime > 0 {
		snap.UptimeNs = uint64(uptime)
		seconds := float64(uptime) / 1e9
		snap.AllocRate = float64(snap.TotalAllocs) / seconds
	}

	if snap.TotalAllocs > 0 {
		snap.PoolShare = float64(snap.PoolAllocs) / float64(snap.TotalAllocs)
	}
	if snap.CoWCopies > 0 {
		snap.CoWBytesPerMut = float64(snap.CoWBytes) / float64(snap.CoWCopies)
	}

	return snap
}

// metricsObserver bridges allocator events into a Metrics instance
type metricsObserver struct {
	metrics *Metrics
}

func (o *metricsObserver) OnAlloc(size int, kind alloc.Kind) {
	o.metrics.RecordAlloc(uint64(size), kind)
}

func (o *metricsObserver) OnFree(size int, kind alloc.Kind) {
	o.metrics.RecordFree(uint64(size))
}

func (o *metricsObserver) OnPoolRecycle(size int) {
	o.metrics.RecordPoolRecycle()
}

// defaultMetrics collects storage statistics for the whole package
var defaultMetrics = NewMetrics()

func init() {
	alloc.SetObserver(&metricsObserver{metrics: defaultMetrics})
}

// BufferMetrics returns the package-wide storage metrics
func BufferMetrics() *Metrics {
	return defaultMetrics
}
