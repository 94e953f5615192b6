// Package niokit provides the foundational byte-buffer primitives for a
// non-blocking I/O runtime: a growable, copy-on-write ByteBuffer and a
// zero-copy ByteBufferView over it.
//
// Together with the sibling packages pqueue (indexed min-heap and priority
// queue) and tinyseq (small-size-optimized sequence), these types replace
// general-purpose collections in event loops, channel pipelines, and protocol
// codecs, where avoiding allocation and copying matters more than generality.
//
// All types here are single-owner values: copy them with Clone (or by value
// where documented) to share across goroutines; never mutate one instance
// concurrently. No operation blocks, performs I/O, or takes a context.
//
// Invariant violations (indexes outside a view's range, cursor moves that
// break the reader/writer ordering) are programmer errors and panic.
// Conditions a caller can reasonably hit at runtime (copy ranges computed
// from untrusted lengths, short reads) are returned as *Error values.
package niokit
