package niokit

import (
	"bytes"
	"testing"
)

func viewOver(t *testing.T, data []byte) ByteBufferView {
	t.Helper()
	return ViewOf(BufferOf(data))
}

func TestViewBasics(t *testing.T) {
	v := viewOver(t, []byte{1, 2, 3, 4, 5})

	if v.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", v.Len())
	}
	if v.Start() != 0 || v.End() != 5 {
		t.Errorf("range = [%d, %d), want [0, 5)", v.Start(), v.End())
	}
	if v.At(2) != 3 {
		t.Errorf("At(2) = %d, want 3", v.At(2))
	}

	v.SetAt(2, 9)
	if v.At(2) != 9 {
		t.Errorf("At(2) after SetAt = %d, want 9", v.At(2))
	}
}

func TestViewIndexPanics(t *testing.T) {
	b := BufferOf([]byte{1, 2, 3, 4, 5})
	v := b.ViewAt(1, 4)

	tests := []struct {
		name string
		fn   func()
	}{
		{"read below range", func() { v.At(0) }},
		{"read at end", func() { v.At(4) }},
		{"write below range", func() { v.SetAt(0, 1) }},
		{"subview outside", func() { v.SubView(0, 3) }},
		{"view past capacity", func() { b.ViewAt(0, b.Cap()+1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestViewSubView(t *testing.T) {
	v := viewOver(t, []byte{10, 20, 30, 40, 50})
	sub := v.SubView(1, 4)

	if sub.Len() != 3 {
		t.Fatalf("subview Len() = %d, want 3", sub.Len())
	}
	// Absolute indexing: the subview's first byte is at index 1
	if sub.At(1) != 20 {
		t.Errorf("sub.At(1) = %d, want 20", sub.At(1))
	}

	// Subviews share the buffer: writes are visible both ways
	sub.SetAt(2, 99)
	if v.At(2) != 99 {
		t.Errorf("parent view missed subview write: At(2) = %d", v.At(2))
	}
}

func TestViewReplaceSubrangeSame(t *testing.T) {
	v := viewOver(t, []byte{1, 2, 3, 4, 5})
	v.ReplaceSubrange(1, 4, []byte{7, 8, 9})

	if !bytes.Equal(v.Bytes(), []byte{1, 7, 8, 9, 5}) {
		t.Errorf("got %v, want [1 7 8 9 5]", v.Bytes())
	}
	if v.Len() != 5 {
		t.Errorf("Len() = %d, want 5", v.Len())
	}
}

func TestViewReplaceSubrangeShrink(t *testing.T) {
	v := viewOver(t, []byte{1, 2, 3, 4, 5})
	v.ReplaceSubrange(1, 4, []byte{9})

	if !bytes.Equal(v.Bytes(), []byte{1, 9, 5}) {
		t.Errorf("got %v, want [1 9 5]", v.Bytes())
	}
	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3", v.Len())
	}
	if v.Buffer().WriterIndex() != 3 {
		t.Errorf("writer index = %d, want 3", v.Buffer().WriterIndex())
	}
}

func TestViewReplaceSubrangeGrow(t *testing.T) {
	v := viewOver(t, []byte{1, 2, 3, 4, 5})
	v.ReplaceSubrange(1, 4, []byte{9, 9, 9, 9})

	if !bytes.Equal(v.Bytes(), []byte{1, 9, 9, 9, 9, 5}) {
		t.Errorf("got %v, want [1 9 9 9 9 5]", v.Bytes())
	}
	if v.Len() != 6 {
		t.Errorf("Len() = %d, want 6", v.Len())
	}
	if v.Buffer().WriterIndex() != 6 {
		t.Errorf("writer index = %d, want 6", v.Buffer().WriterIndex())
	}
}

func TestViewReplaceSubrangeEmptyCases(t *testing.T) {
	// Delete: replace with nothing
	v := viewOver(t, []byte{1, 2, 3, 4, 5})
	v.ReplaceSubrange(1, 4, nil)
	if !bytes.Equal(v.Bytes(), []byte{1, 5}) {
		t.Errorf("delete got %v, want [1 5]", v.Bytes())
	}

	// Insert: replace an empty range
	v = viewOver(t, []byte{1, 5})
	v.ReplaceSubrange(1, 1, []byte{2, 3, 4})
	if !bytes.Equal(v.Bytes(), []byte{1, 2, 3, 4, 5}) {
		t.Errorf("insert got %v, want [1 2 3 4 5]", v.Bytes())
	}
}

func TestViewReplaceSubrangeGrowAcrossCapacity(t *testing.T) {
	// Force the grow case through a reserve by replacing with far more
	// bytes than the initial capacity holds.
	data := []byte{1, 2, 3}
	v := viewOver(t, data)
	big := bytes.Repeat([]byte{7}, 300)
	v.ReplaceSubrange(1, 2, big)

	want := append(append([]byte{1}, big...), 3)
	if !bytes.Equal(v.Bytes(), want) {
		t.Errorf("content mismatch after growth, len=%d want=%d", v.Len(), len(want))
	}
}

func TestViewAppendFrontier(t *testing.T) {
	b := BufferOf([]byte{1, 2, 3})
	v := ViewOf(b)

	countBefore := v.Len()
	writerBefore := b.WriterIndex()

	// Appending at a view ending exactly at the writer cursor advances both
	// by exactly one.
	v.Append(7)

	if v.Len() != countBefore+1 {
		t.Errorf("Len() = %d, want %d", v.Len(), countBefore+1)
	}
	if b.WriterIndex() != writerBefore+1 {
		t.Errorf("writer index = %d, want %d", b.WriterIndex(), writerBefore+1)
	}
	if v.At(3) != 7 {
		t.Errorf("At(3) = %d, want 7", v.At(3))
	}
}

func TestViewAppendBytes(t *testing.T) {
	b := BufferOf([]byte{1})
	v := ViewOf(b)

	v.AppendBytes([]byte{2, 3, 4})
	if !bytes.Equal(v.Bytes(), []byte{1, 2, 3, 4}) {
		t.Errorf("got %v, want [1 2 3 4]", v.Bytes())
	}
	if b.WriterIndex() != 4 {
		t.Errorf("writer index = %d, want 4", b.WriterIndex())
	}

	// Appending nothing changes nothing
	v.AppendBytes(nil)
	if v.Len() != 4 || b.WriterIndex() != 4 {
		t.Errorf("empty append changed state: len=%d writer=%d", v.Len(), b.WriterIndex())
	}
}

func TestViewEquality(t *testing.T) {
	// Equality is by content, not position or buffer identity
	a := BufferOf([]byte{0, 0, 1, 2, 3})
	b := BufferOf([]byte{1, 2, 3})

	va := a.ViewAt(2, 5)
	vb := ViewOf(b)

	if !va.Equal(vb) {
		t.Error("views with equal content at different positions must be equal")
	}
	if va.Hash64() != vb.Hash64() {
		t.Error("equal views must hash equal")
	}

	vb.SetAt(0, 9)
	if va.Equal(vb) {
		t.Error("views with different content must not be equal")
	}

	// Different lengths are never equal
	if va.Equal(va.SubView(2, 4)) {
		t.Error("views of different lengths must not be equal")
	}
}

func TestViewCopyTo(t *testing.T) {
	v := viewOver(t, []byte{1, 2, 3, 4, 5})

	dst := make([]byte, 5)
	if n := v.CopyTo(dst); n != 5 {
		t.Errorf("CopyTo = %d, want 5", n)
	}
	if !bytes.Equal(dst, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("dst = %v", dst)
	}

	short := make([]byte, 2)
	if n := v.CopyTo(short); n != 2 {
		t.Errorf("CopyTo short = %d, want 2", n)
	}
}

func TestViewRoundTrip(t *testing.T) {
	// Constructing a buffer from a view and viewing its readable region
	// must yield a view equal to the original.
	src := BufferOf([]byte{0xca, 0xfe, 0xba, 0xbe, 0x42})
	v := src.ViewAt(1, 4)

	standalone := BufferFromView(v)
	if standalone.ReadableBytes() != v.Len() {
		t.Fatalf("standalone readable = %d, want %d", standalone.ReadableBytes(), v.Len())
	}

	round := ViewOf(standalone)
	if !round.Equal(v) {
		t.Errorf("round trip mismatch: %v vs %v", round.Bytes(), v.Bytes())
	}

	// The standalone buffer shares nothing with the source
	round.SetAt(0, 0xff)
	if v.At(1) == 0xff {
		t.Error("round-tripped buffer aliases the source")
	}
}

func TestViewIteration(t *testing.T) {
	v := viewOver(t, []byte{5, 6, 7})

	var idx []int
	var vals []byte
	for i, b := range v.All() {
		idx = append(idx, i)
		vals = append(vals, b)
	}

	if len(idx) != 3 || idx[0] != 0 || idx[2] != 2 {
		t.Errorf("indexes = %v", idx)
	}
	if !bytes.Equal(vals, []byte{5, 6, 7}) {
		t.Errorf("values = %v", vals)
	}

	// Iteration does not consume: a second pass sees the same bytes
	count := 0
	for range v.All() {
		count++
	}
	if count != 3 {
		t.Errorf("second pass saw %d elements, want 3", count)
	}
}

func TestViewsShareBuffer(t *testing.T) {
	b := BufferOf([]byte{1, 2, 3, 4})
	v1 := ViewOf(b)
	v2 := ViewOf(b)

	v1.SetAt(0, 9)
	if v2.At(0) != 9 {
		t.Error("views over the same buffer must observe each other's writes")
	}
}
