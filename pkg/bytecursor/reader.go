package bytecursor

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader reads little-endian values from a byte slice it does not own.
type Reader struct {
	cursor
}

func NewReader(buf []byte) *Reader {
	return &Reader{cursor: cursor{buf: buf}}
}

// ReadBytes returns the next n bytes. The slice aliases the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.span(n, "read")
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.span(1, "read")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.span(2, "read")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.span(4, "read")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadF32() (float32, error) {
	u, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// ReadString reads a u32 byte length followed by that many UTF-8 bytes.
// On failure the position is restored to where the length prefix began.
func (r *Reader) ReadString() (string, error) {
	start := r.off
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(r.Remaining()) {
		r.off = start
		return "", fmt.Errorf("%w: string of %d bytes at %d (capacity %d)", ErrOutOfBounds, n, start+4, len(r.buf))
	}
	b, _ := r.span(int(n), "read")
	return string(b), nil
}
