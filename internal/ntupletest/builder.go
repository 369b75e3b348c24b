// Package ntupletest builds NTuple buffers for tests.
package ntupletest

import (
	"github.com/samcharles93/dmmy/pkg/bytecursor"
	"github.com/samcharles93/dmmy/pkg/checksum"
	"github.com/samcharles93/dmmy/pkg/ntuple"
)

// Fixture describes a document to encode. Pages are written in reverse
// table order when ReversePages is set, so byte order differs from table
// order.
type Fixture struct {
	Magic        string
	Version      uint16
	Name         string
	Description  string
	Pages        [][]float32
	ReversePages bool
}

// Offsets records where each section landed in the encoded buffer.
type Offsets struct {
	// HeaderChecksum is the offset of the header checksum field.
	HeaderChecksum int
	Footer         int
	Pages          []int
}

// Build encodes f with correct checksums. Magic and Version default to the
// supported values when empty.
func Build(f Fixture) ([]byte, Offsets) {
	if f.Magic == "" {
		f.Magic = ntuple.Magic
	}
	if f.Version == 0 {
		f.Version = ntuple.Version
	}

	headerLen := len(f.Magic) + 2 + 4 + len(f.Name) + 4 + len(f.Description) + 4 + 4
	footerLen := 4 + 12*len(f.Pages) + 4
	total := headerLen + footerLen
	for _, p := range f.Pages {
		total += 4*len(p) + 4
	}

	w := bytecursor.NewWriter(total)
	must(w.PutBytes([]byte(f.Magic)))
	must(w.PutU16(f.Version))
	must(w.PutString(f.Name))
	must(w.PutString(f.Description))
	footerField := w.Pos()
	must(w.PutU32(0))
	sumField := w.Pos()
	must(w.PutU32(0))

	order := make([]int, len(f.Pages))
	for i := range order {
		order[i] = i
		if f.ReversePages {
			order[i] = len(f.Pages) - 1 - i
		}
	}
	offsets := Offsets{HeaderChecksum: sumField, Pages: make([]int, len(f.Pages))}
	for _, i := range order {
		offsets.Pages[i] = w.Pos()
		for _, v := range f.Pages[i] {
			must(w.PutF32(v))
		}
		putChecksum(w, offsets.Pages[i])
	}

	offsets.Footer = w.Pos()
	must(w.PutU32(uint32(len(f.Pages))))
	for i, p := range f.Pages {
		must(w.PutU32(uint32(offsets.Pages[i])))
		must(w.PutU32(uint32(4*len(p) + 4)))
		must(w.PutU32(uint32(len(p))))
	}
	putChecksum(w, offsets.Footer)

	must(w.Seek(footerField))
	must(w.PutU32(uint32(offsets.Footer)))
	putChecksum(w, 0)

	return w.Bytes(), offsets
}

func putChecksum(w *bytecursor.Writer, start int) {
	view, err := w.ByteView(start, w.Pos())
	must(err)
	must(w.PutU32(checksum.Sum(view)))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
