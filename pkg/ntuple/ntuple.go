// Package ntuple decodes NTuple documents.
//
// An NTuple is a single buffer made of three kinds of independently
// checksummed sections: a header at offset zero, a footer holding the page
// table, and one data page per table entry. All integers are little-endian.
//
//	HEADER   "DMMY" | u16 version | name | description | u32 footerOffset | u32 checksum
//	FOOTER   u32 numPages | numPages × (u32 offset, u32 size, u32 numElements) | u32 checksum
//	PAGE     numElements × f32 | u32 checksum
//
// Strings are a u32 byte length followed by UTF-8 bytes. Each checksum covers
// the bytes of its own section that precede it.
//
// Decoding is fail-closed: the first failing check aborts the parse and no
// partial Document is returned.
package ntuple

// NTuple global constants must never change.
const (
	// Magic is the 4-byte file signature.
	Magic = "DMMY"

	// Version is the only accepted format version.
	Version uint16 = 10001
)

// Header is the decoded and verified header section.
type Header struct {
	Version      uint16
	Name         string
	Description  string
	FooterOffset uint32
	Checksum     uint32

	// Size is the encoded length of the header, checksum included.
	Size int
}

// PageInfo is one footer table entry.
type PageInfo struct {
	Offset      uint32
	Size        uint32
	NumElements uint32
}

// End returns the offset one past the page checksum implied by NumElements.
func (p PageInfo) End() uint64 {
	return uint64(p.Offset) + uint64(p.NumElements)*4 + 4
}

// Layout is the verified header and page table of a document.
type Layout struct {
	Header *Header
	Pages  []PageInfo
}

// Document is the result of a successful parse. It does not alias the input.
type Document struct {
	Name        string
	Description string
	Pages       [][]float32
}

// NumElements returns the total element count across all pages.
func (d *Document) NumElements() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p)
	}
	return n
}
