// Package bytecursor provides positioned little-endian readers and writers
// over fixed-size byte buffers.
//
// A Reader and a Writer share the same buffer/position representation but
// expose disjoint capabilities. Every read or write advances the position by
// exactly the width of the value; Seek moves it directly. Accesses that would
// cross the end of the buffer fail with ErrOutOfBounds and leave the position
// untouched.
package bytecursor

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds  = errors.New("bytecursor: out of bounds")
	ErrInvalidRange = errors.New("bytecursor: invalid range")
)

type cursor struct {
	buf []byte
	off int
}

// Pos returns the current absolute position.
func (c *cursor) Pos() int { return c.off }

// Len returns the capacity of the underlying buffer.
func (c *cursor) Len() int { return len(c.buf) }

// Remaining returns the number of bytes between the position and the end.
func (c *cursor) Remaining() int { return len(c.buf) - c.off }

// Seek sets the absolute position. pos may equal Len.
func (c *cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return fmt.Errorf("%w: seek to %d (capacity %d)", ErrOutOfBounds, pos, len(c.buf))
	}
	c.off = pos
	return nil
}

// ByteView returns buf[start:end] without moving the position.
// The slice aliases the underlying buffer.
func (c *cursor) ByteView(start, end int) ([]byte, error) {
	if end < start {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end)
	}
	if start < 0 || end > len(c.buf) {
		return nil, fmt.Errorf("%w: view [%d, %d) (capacity %d)", ErrOutOfBounds, start, end, len(c.buf))
	}
	return c.buf[start:end:end], nil
}

// span reserves the next n bytes and advances past them.
func (c *cursor) span(n int, op string) ([]byte, error) {
	if n < 0 || n > len(c.buf)-c.off {
		return nil, fmt.Errorf("%w: %s %d bytes at %d (capacity %d)", ErrOutOfBounds, op, n, c.off, len(c.buf))
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}
