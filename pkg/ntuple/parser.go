package ntuple

import (
	"fmt"

	"github.com/samcharles93/dmmy/pkg/bytecursor"
	"github.com/samcharles93/dmmy/pkg/checksum"
)

// Logger receives phase-level diagnostics. internal/logger.Logger and
// *slog.Logger both satisfy it.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger routes parse diagnostics to log.
func WithLogger(log Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// Parser decodes one buffer. It owns its cursor and is not safe for
// concurrent use; create one per parse.
type Parser struct {
	r   *bytecursor.Reader
	log Logger
}

func NewParser(buf []byte, opts ...Option) *Parser {
	p := &Parser{
		r:   bytecursor.NewReader(buf),
		log: nopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes and verifies a complete NTuple held in buf.
func Parse(buf []byte, opts ...Option) (*Document, error) {
	_, doc, err := ParseWithLayout(buf, opts...)
	return doc, err
}

// ParseWithLayout is Parse that also returns the verified header and page
// table.
func ParseWithLayout(buf []byte, opts ...Option) (*Layout, *Document, error) {
	p := NewParser(buf, opts...)

	layout, err := p.readLayout()
	if err != nil {
		return nil, nil, err
	}

	pages := make([][]float32, len(layout.Pages))
	for i, info := range layout.Pages {
		elems, err := p.ReadPage(i, info)
		if err != nil {
			return nil, nil, err
		}
		pages[i] = elems
	}
	p.log.Debug("document parsed", "name", layout.Header.Name, "pages", len(pages))

	return layout, &Document{
		Name:        layout.Header.Name,
		Description: layout.Header.Description,
		Pages:       pages,
	}, nil
}

// Inspect verifies the header and footer of buf and returns the page table
// without decoding any page.
func Inspect(buf []byte, opts ...Option) (*Layout, error) {
	return NewParser(buf, opts...).readLayout()
}

func (p *Parser) readLayout() (*Layout, error) {
	h, err := p.ReadHeader()
	if err != nil {
		return nil, err
	}
	pages, err := p.ReadFooter(h)
	if err != nil {
		return nil, err
	}
	return &Layout{Header: h, Pages: pages}, nil
}

// ReadHeader decodes and verifies the header at offset zero.
func (p *Parser) ReadHeader() (*Header, error) {
	if err := p.r.Seek(0); err != nil {
		return nil, err
	}
	magic, err := p.r.ReadBytes(len(Magic))
	if err != nil {
		return nil, fmt.Errorf("header magic: %w", err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, magic)
	}

	version, err := p.r.ReadU16()
	if err != nil {
		return nil, fmt.Errorf("header version: %w", err)
	}
	if version != Version {
		return nil, &VersionError{Version: version}
	}

	h := &Header{Version: version}
	if h.Name, err = p.r.ReadString(); err != nil {
		return nil, fmt.Errorf("header name: %w", err)
	}
	if h.Description, err = p.r.ReadString(); err != nil {
		return nil, fmt.Errorf("header description: %w", err)
	}
	if h.FooterOffset, err = p.r.ReadU32(); err != nil {
		return nil, fmt.Errorf("header footer offset: %w", err)
	}
	if h.Checksum, err = p.r.ReadU32(); err != nil {
		return nil, fmt.Errorf("header checksum: %w", err)
	}
	h.Size = p.r.Pos()

	if err := p.verify(SectionHeader, -1, 0, h.Checksum); err != nil {
		return nil, err
	}
	p.log.Debug("header verified",
		"name", h.Name,
		"description", h.Description,
		"footer_offset", h.FooterOffset,
		"checksum", h.Checksum,
	)
	return h, nil
}

// ReadFooter decodes and verifies the page table at h.FooterOffset.
// Entries are returned in file order.
func (p *Parser) ReadFooter(h *Header) ([]PageInfo, error) {
	start, err := p.seek(h.FooterOffset)
	if err != nil {
		return nil, fmt.Errorf("footer: %w", err)
	}

	numPages, err := p.r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("footer page count: %w", err)
	}
	// Each entry is 12 bytes; never reserve more than the buffer can hold.
	pages := make([]PageInfo, 0, min(uint64(numPages), uint64(p.r.Remaining()/12)))
	for i := uint32(0); i < numPages; i++ {
		var info PageInfo
		if info.Offset, err = p.r.ReadU32(); err != nil {
			return nil, fmt.Errorf("footer entry %d: %w", i, err)
		}
		if info.Size, err = p.r.ReadU32(); err != nil {
			return nil, fmt.Errorf("footer entry %d: %w", i, err)
		}
		if info.NumElements, err = p.r.ReadU32(); err != nil {
			return nil, fmt.Errorf("footer entry %d: %w", i, err)
		}
		pages = append(pages, info)
	}

	stored, err := p.r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("footer checksum: %w", err)
	}
	if err := p.verify(SectionFooter, -1, start, stored); err != nil {
		return nil, err
	}
	p.log.Debug("footer verified", "pages", len(pages), "checksum", stored)
	return pages, nil
}

// ReadPage decodes and verifies one page. index is used only for error
// reporting.
func (p *Parser) ReadPage(index int, info PageInfo) ([]float32, error) {
	start, err := p.seek(info.Offset)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index, err)
	}

	elems := make([]float32, 0, min(uint64(info.NumElements), uint64(p.r.Remaining()/4)))
	for i := uint32(0); i < info.NumElements; i++ {
		v, err := p.r.ReadF32()
		if err != nil {
			return nil, fmt.Errorf("page %d element %d: %w", index, i, err)
		}
		elems = append(elems, v)
	}

	stored, err := p.r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("page %d checksum: %w", index, err)
	}
	if err := p.verify(SectionPage, index, start, stored); err != nil {
		return nil, err
	}
	p.log.Debug("page verified", "index", index, "offset", info.Offset, "elements", len(elems))
	return elems, nil
}

func (p *Parser) seek(off uint32) (int, error) {
	if uint64(off) > uint64(p.r.Len()) {
		return 0, fmt.Errorf("%w: offset %d beyond buffer of %d bytes", bytecursor.ErrOutOfBounds, off, p.r.Len())
	}
	return int(off), p.r.Seek(int(off))
}

// verify checks stored against the digest of [start, pos-4), the section
// bytes that precede the checksum field just read.
func (p *Parser) verify(section Section, index, start int, stored uint32) error {
	view, err := p.r.ByteView(start, p.r.Pos()-checksum.Size)
	if err != nil {
		return fmt.Errorf("%s checksum range: %w", section, err)
	}
	computed := checksum.Sum(view)
	p.log.Debug("checksum", "section", string(section), "index", index, "stored", stored, "computed", computed)
	if computed != stored {
		return &ChecksumError{
			Section:  section,
			Index:    index,
			Stored:   stored,
			Computed: computed,
		}
	}
	return nil
}
