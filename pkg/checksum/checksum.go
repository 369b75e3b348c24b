// Package checksum implements the 32-bit section digest used by NTuple files.
//
// The digest is a djb2 variant: starting from Seed, each byte b updates the
// state as h = h*33 ^ b with wrapping uint32 arithmetic. It detects accidental
// corruption only and must not be used where tampering matters.
package checksum

import "hash"

const Seed uint32 = 5381

// Size is the digest length in bytes.
const Size = 4

// Sum returns the digest of b.
func Sum(b []byte) uint32 {
	return Update(Seed, b)
}

// Update continues a running digest h over b.
func Update(h uint32, b []byte) uint32 {
	for _, c := range b {
		h = h*33 ^ uint32(c)
	}
	return h
}

type digest struct {
	h uint32
}

// New returns a streaming hash.Hash32 that produces the same value as Sum.
// Sum appends the state in little-endian order, matching the on-disk field.
func New() hash.Hash32 {
	return &digest{h: Seed}
}

func (d *digest) Write(p []byte) (int, error) {
	d.h = Update(d.h, p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return d.h }

func (d *digest) Sum(in []byte) []byte {
	h := d.h
	return append(in, byte(h), byte(h>>8), byte(h>>16), byte(h>>24))
}

func (d *digest) Reset()         { d.h = Seed }
func (d *digest) Size() int      { return Size }
func (d *digest) BlockSize() int { return 1 }
