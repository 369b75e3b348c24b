package ntuple

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMagic           = errors.New("invalid NTuple magic")
	ErrUnsupportedVersion     = errors.New("unsupported NTuple version")
	ErrHeaderChecksumMismatch = errors.New("header checksum mismatch")
	ErrFooterChecksumMismatch = errors.New("footer checksum mismatch")
	ErrPageChecksumMismatch   = errors.New("page checksum mismatch")
)

// Section names a checksummed region.
type Section string

const (
	SectionHeader Section = "header"
	SectionFooter Section = "footer"
	SectionPage   Section = "page"
)

// VersionError reports a version field other than Version.
type VersionError struct {
	Version uint16
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnsupportedVersion, e.Version)
}

func (e *VersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

// ChecksumError reports a stored checksum that does not match the section
// bytes. Index is the zero-based page index for SectionPage and -1 otherwise.
type ChecksumError struct {
	Section  Section
	Index    int
	Stored   uint32
	Computed uint32
}

func (e *ChecksumError) Error() string {
	if e.Section == SectionPage {
		return fmt.Sprintf("page %d checksum mismatch: stored %#x, computed %#x", e.Index, e.Stored, e.Computed)
	}
	return fmt.Sprintf("%s checksum mismatch: stored %#x, computed %#x", e.Section, e.Stored, e.Computed)
}

func (e *ChecksumError) Unwrap() error {
	switch e.Section {
	case SectionHeader:
		return ErrHeaderChecksumMismatch
	case SectionFooter:
		return ErrFooterChecksumMismatch
	default:
		return ErrPageChecksumMismatch
	}
}

// PageIndex returns the index of the page whose checksum failed.
func PageIndex(err error) (int, bool) {
	var ce *ChecksumError
	if errors.As(err, &ce) && ce.Section == SectionPage {
		return ce.Index, true
	}
	return 0, false
}
