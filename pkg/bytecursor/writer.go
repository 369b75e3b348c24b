package bytecursor

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer writes little-endian values into a fixed-capacity buffer.
//
// Size counts every byte written, including bytes rewritten after a Seek,
// so it only equals the written extent for strictly sequential use.
type Writer struct {
	cursor
	size int
}

// NewWriter allocates a zeroed buffer of the given capacity.
func NewWriter(capacity int) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{cursor: cursor{buf: make([]byte, capacity)}}
}

// Size returns the running total of bytes written.
func (w *Writer) Size() int { return w.size }

// Bytes returns the whole underlying buffer.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) put(n int) ([]byte, error) {
	b, err := w.span(n, "write")
	if err != nil {
		return nil, err
	}
	w.size += n
	return b, nil
}

func (w *Writer) PutBytes(p []byte) error {
	b, err := w.put(len(p))
	if err != nil {
		return err
	}
	copy(b, p)
	return nil
}

func (w *Writer) PutU8(v uint8) error {
	b, err := w.put(1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

func (w *Writer) PutU16(v uint16) error {
	b, err := w.put(2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b, v)
	return nil
}

func (w *Writer) PutU32(v uint32) error {
	b, err := w.put(4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, v)
	return nil
}

func (w *Writer) PutF32(v float32) error {
	return w.PutU32(math.Float32bits(v))
}

// PutString writes len(s) as a u32 followed by the UTF-8 bytes of s.
// Nothing is written if the whole string does not fit.
func (w *Writer) PutString(s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return fmt.Errorf("%w: string of %d bytes exceeds u32 length", ErrOutOfBounds, len(s))
	}
	if 4+len(s) > w.Remaining() {
		return fmt.Errorf("%w: write string of %d bytes at %d (capacity %d)", ErrOutOfBounds, len(s), w.off, len(w.buf))
	}
	if err := w.PutU32(uint32(len(s))); err != nil {
		return err
	}
	b, _ := w.put(len(s))
	copy(b, s)
	return nil
}
