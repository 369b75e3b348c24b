package api

import (
	"errors"

	"github.com/samcharles93/dmmy/pkg/bytecursor"
	"github.com/samcharles93/dmmy/pkg/ntuple"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// decodeErrorCodes is checked in order; the first match names the failure.
var decodeErrorCodes = []struct {
	err  error
	code string
}{
	{ntuple.ErrInvalidMagic, "invalid_magic"},
	{ntuple.ErrUnsupportedVersion, "unsupported_version"},
	{ntuple.ErrHeaderChecksumMismatch, "header_checksum_mismatch"},
	{ntuple.ErrFooterChecksumMismatch, "footer_checksum_mismatch"},
	{ntuple.ErrPageChecksumMismatch, "page_checksum_mismatch"},
	{bytecursor.ErrOutOfBounds, "out_of_bounds"},
	{bytecursor.ErrInvalidRange, "invalid_range"},
}

// decodeError describes a parse failure for API clients.
func decodeError(err error) ResponseError {
	out := ResponseError{
		Message: err.Error(),
		Type:    "invalid_document_error",
		Code:    "invalid_document",
	}
	for _, m := range decodeErrorCodes {
		if errors.Is(err, m.err) {
			out.Code = m.code
			break
		}
	}
	if idx, ok := ntuple.PageIndex(err); ok {
		out.PageIndex = &idx
	}
	return out
}
