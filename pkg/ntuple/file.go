package ntuple

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ErrFileTooLarge is returned when a file cannot be addressed as a []byte.
var ErrFileTooLarge = errors.New("ntuple: file too large")

// ReadFile maps path read-only, parses it and releases the mapping.
// If mmap is unavailable it falls back to ReadAt-based loading.
func ReadFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size, err := bufferSize(stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if size == 0 {
		return Parse(nil, opts...)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		// Parse copies everything it returns, so the mapping can go immediately.
		doc, parseErr := Parse(data, opts...)
		if unmapErr := unix.Munmap(data); unmapErr != nil && parseErr == nil {
			return nil, unmapErr
		}
		return doc, parseErr
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

// ReadFrom loads size bytes from r and parses them.
func ReadFrom(r io.ReaderAt, size int64, opts ...Option) (*Document, error) {
	n, err := bufferSize(size)
	if err != nil {
		return nil, err
	}
	data, err := readAllAt(r, n)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

func bufferSize(size int64) (int, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return 0, ErrFileTooLarge
	}
	return int(size), nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
