package niokit

import (
	"encoding/binary"
	"fmt"
)

// Fixed-width integer accessors. Get* reads are bounds-checked against the
// written region and report ok=false rather than failing, since protocol
// parsers probe for bytes that may not have arrived yet. Set* writes grow
// capacity as needed and never move the writer cursor.
//
// Multi-byte accessors default to network byte order; LE variants are
// provided for little-endian wire formats.

func (b *ByteBuffer) getN(at, width int) ([]byte, bool) {
	if at < 0 || at+width > b.writerIndex {
		return nil, false
	}
	return b.region()[at : at+width], true
}

func (b *ByteBuffer) setN(v []byte, at int) {
	if at < 0 {
		panic(fmt.Sprintf("niokit: negative buffer index %d", at))
	}
	b.mutable(at + len(v))
	copy(b.region()[at:], v)
}

// GetUint8 reads the byte at the given absolute index.
func (b *ByteBuffer) GetUint8(at int) (uint8, bool) {
	p, ok := b.getN(at, 1)
	if !ok {
		return 0, false
	}
	return p[0], true
}

// SetUint8 writes a byte at the given absolute index.
func (b *ByteBuffer) SetUint8(v uint8, at int) {
	b.setN([]byte{v}, at)
}

// GetUint16 reads a big-endian uint16 at the given absolute index.
func (b *ByteBuffer) GetUint16(at int) (uint16, bool) {
	p, ok := b.getN(at, 2)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint16(p), true
}

// SetUint16 writes a big-endian uint16 at the given absolute index.
func (b *ByteBuffer) SetUint16(v uint16, at int) {
	var p [2]byte
	binary.BigEndian.PutUint16(p[:], v)
	b.setN(p[:], at)
}

// GetUint32 reads a big-endian uint32 at the given absolute index.
func (b *ByteBuffer) GetUint32(at int) (uint32, bool) {
	p, ok := b.getN(at, 4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(p), true
}

// SetUint32 writes a big-endian uint32 at the given absolute index.
func (b *ByteBuffer) SetUint32(v uint32, at int) {
	var p [4]byte
	binary.BigEndian.PutUint32(p[:], v)
	b.setN(p[:], at)
}

// GetUint64 reads a big-endian uint64 at the given absolute index.
func (b *ByteBuffer) GetUint64(at int) (uint64, bool) {
	p, ok := b.getN(at, 8)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint64(p), true
}

// SetUint64 writes a big-endian uint64 at the given absolute index.
func (b *ByteBuffer) SetUint64(v uint64, at int) {
	var p [8]byte
	binary.BigEndian.PutUint64(p[:], v)
	b.setN(p[:], at)
}

// Little-endian variants

func (b *ByteBuffer) GetUint16LE(at int) (uint16, bool) {
	p, ok := b.getN(at, 2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(p), true
}

func (b *ByteBuffer) SetUint16LE(v uint16, at int) {
	var p [2]byte
	binary.LittleEndian.PutUint16(p[:], v)
	b.setN(p[:], at)
}

func (b *ByteBuffer) GetUint32LE(at int) (uint32, bool) {
	p, ok := b.getN(at, 4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(p), true
}

func (b *ByteBuffer) SetUint32LE(v uint32, at int) {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], v)
	b.setN(p[:], at)
}

func (b *ByteBuffer) GetUint64LE(at int) (uint64, bool) {
	p, ok := b.getN(at, 8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(p), true
}

func (b *ByteBuffer) SetUint64LE(v uint64, at int) {
	var p [8]byte
	binary.LittleEndian.PutUint64(p[:], v)
	b.setN(p[:], at)
}

// Cursor-relative conveniences for codec code.

// WriteUint32 appends a big-endian uint32 at the writer cursor.
func (b *ByteBuffer) WriteUint32(v uint32) {
	b.SetUint32(v, b.writerIndex)
	b.writerIndex += 4
}

// ReadUint32 consumes a big-endian uint32 at the reader cursor.
func (b *ByteBuffer) ReadUint32() (uint32, error) {
	v, ok := b.GetUint32(b.readerIndex)
	if !ok {
		return 0, NewError("read_uint32", ErrCodeTruncated,
			fmt.Sprintf("need 4 bytes, %d readable", b.ReadableBytes()))
	}
	b.readerIndex += 4
	return v, nil
}

// WriteUint8 appends a byte at the writer cursor.
func (b *ByteBuffer) WriteUint8(v uint8) {
	b.SetUint8(v, b.writerIndex)
	b.writerIndex++
}

// ReadUint8 consumes a byte at the reader cursor.
func (b *ByteBuffer) ReadUint8() (uint8, error) {
	v, ok := b.GetUint8(b.readerIndex)
	if !ok {
		return 0, NewError("read_uint8", ErrCodeTruncated, "no readable bytes")
	}
	b.readerIndex++
	return v, nil
}
