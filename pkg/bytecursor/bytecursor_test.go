package bytecursor

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestScalarRoundTrip(t *testing.T) {
	t.Parallel()

	w := NewWriter(1 + 2 + 4 + 4*5)
	u8s := uint8(0xAB)
	u16s := uint16(0xBEEF)
	u32s := uint32(0xDEADBEEF)
	f32s := []float32{0, -1.5, float32(math.Inf(1)), math.SmallestNonzeroFloat32, math.Float32frombits(0x7fc00001)}

	if err := w.PutU8(u8s); err != nil {
		t.Fatalf("put u8: %v", err)
	}
	if err := w.PutU16(u16s); err != nil {
		t.Fatalf("put u16: %v", err)
	}
	if err := w.PutU32(u32s); err != nil {
		t.Fatalf("put u32: %v", err)
	}
	for _, f := range f32s {
		if err := w.PutF32(f); err != nil {
			t.Fatalf("put f32: %v", err)
		}
	}
	if w.Pos() != w.Len() || w.Size() != w.Len() {
		t.Fatalf("pos=%d size=%d want %d", w.Pos(), w.Size(), w.Len())
	}

	r := NewReader(w.Bytes())
	if v, err := r.ReadU8(); err != nil || v != u8s {
		t.Fatalf("u8: got %#x err=%v", v, err)
	}
	if v, err := r.ReadU16(); err != nil || v != u16s {
		t.Fatalf("u16: got %#x err=%v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != u32s {
		t.Fatalf("u32: got %#x err=%v", v, err)
	}
	for i, want := range f32s {
		got, err := r.ReadF32()
		if err != nil {
			t.Fatalf("f32[%d]: %v", i, err)
		}
		if math.Float32bits(got) != math.Float32bits(want) {
			t.Fatalf("f32[%d]: got bits %#x want %#x", i, math.Float32bits(got), math.Float32bits(want))
		}
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining: got %d want 0", r.Remaining())
	}
}

func TestLittleEndianLayout(t *testing.T) {
	t.Parallel()

	w := NewWriter(6)
	_ = w.PutU16(0x0102)
	_ = w.PutU32(0x03040506)
	want := []byte{0x02, 0x01, 0x06, 0x05, 0x04, 0x03}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("layout: got % x want % x", w.Bytes(), want)
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "ntuple", "naïve 日本"} {
		w := NewWriter(4 + len(s))
		if err := w.PutString(s); err != nil {
			t.Fatalf("put %q: %v", s, err)
		}
		r := NewReader(w.Bytes())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("read %q: %v", s, err)
		}
		if got != s {
			t.Fatalf("round trip: got %q want %q", got, s)
		}
		if r.Pos() != 4+len(s) {
			t.Fatalf("pos after %q: got %d want %d", s, r.Pos(), 4+len(s))
		}
	}
}

func TestReadPastEnd(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{1, 2, 3})
	if _, err := r.ReadU32(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("u32 on 3 bytes: got %v", err)
	}
	if r.Pos() != 0 {
		t.Fatalf("failed read moved cursor to %d", r.Pos())
	}
	if _, err := r.ReadU16(); err != nil {
		t.Fatalf("u16: %v", err)
	}
	if _, err := r.ReadU16(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("second u16: got %v", err)
	}
	if _, err := r.ReadU8(); err != nil {
		t.Fatalf("last u8: %v", err)
	}
	if _, err := r.ReadF32(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("f32 at end: got %v", err)
	}
}

func TestReadStringTruncated(t *testing.T) {
	t.Parallel()

	// Length prefix claims 10 bytes but only 2 follow.
	r := NewReader([]byte{10, 0, 0, 0, 'h', 'i'})
	if _, err := r.ReadString(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("truncated string: got %v", err)
	}
	if r.Pos() != 0 {
		t.Fatalf("failed string read left cursor at %d", r.Pos())
	}

	r = NewReader([]byte{0xff, 0xff, 0xff, 0xff})
	if _, err := r.ReadString(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("huge length: got %v", err)
	}
}

func TestWritePastEnd(t *testing.T) {
	t.Parallel()

	w := NewWriter(3)
	if err := w.PutU32(1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("u32 into 3 bytes: got %v", err)
	}
	if w.Size() != 0 || w.Pos() != 0 {
		t.Fatalf("failed write changed state: size=%d pos=%d", w.Size(), w.Pos())
	}
	if err := w.PutString("ab"); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("string into 3 bytes: got %v", err)
	}
	if err := w.PutBytes([]byte{1, 2, 3}); err != nil {
		t.Fatalf("exact fill: %v", err)
	}
	if err := w.PutU8(4); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("u8 past end: got %v", err)
	}
}

func TestSeek(t *testing.T) {
	t.Parallel()

	w := NewWriter(8)
	_ = w.PutU32(0)
	_ = w.PutU32(7)
	if err := w.Seek(0); err != nil {
		t.Fatalf("seek: %v", err)
	}
	_ = w.PutU32(42)
	if w.Size() != 12 {
		t.Fatalf("size counts overwrites: got %d want 12", w.Size())
	}
	if err := w.Seek(9); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("seek past capacity: got %v", err)
	}
	if err := w.Seek(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("negative seek: got %v", err)
	}

	r := NewReader(w.Bytes())
	if err := r.Seek(4); err != nil {
		t.Fatalf("seek: %v", err)
	}
	if v, _ := r.ReadU32(); v != 7 {
		t.Fatalf("after seek: got %d want 7", v)
	}
	if err := r.Seek(0); err != nil {
		t.Fatalf("seek: %v", err)
	}
	if v, _ := r.ReadU32(); v != 42 {
		t.Fatalf("overwritten value: got %d want 42", v)
	}
	if err := r.Seek(r.Len()); err != nil {
		t.Fatalf("seek to end: %v", err)
	}
}

func TestByteView(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte("DMMYrest"))
	_, _ = r.ReadU8()
	v, err := r.ByteView(0, 4)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if string(v) != "DMMY" {
		t.Fatalf("view: got %q", v)
	}
	if r.Pos() != 1 {
		t.Fatalf("view moved cursor to %d", r.Pos())
	}
	if v, err := r.ByteView(3, 3); err != nil || len(v) != 0 {
		t.Fatalf("empty view: len=%d err=%v", len(v), err)
	}
	if _, err := r.ByteView(4, 2); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("reversed view: got %v", err)
	}
	if _, err := r.ByteView(2, 9); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("view past end: got %v", err)
	}
}
