package api

import (
	"math"
	"strconv"

	"github.com/samcharles93/dmmy/pkg/ntuple"
)

type DocumentResponse struct {
	ID           string        `json:"id"`
	Object       string        `json:"object"`
	CreatedAt    int64         `json:"created_at"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	SizeBytes    int           `json:"size_bytes"`
	PageCount    int           `json:"page_count"`
	ElementCount int           `json:"element_count"`
	Pages        []PageSummary `json:"pages"`
}

type PageSummary struct {
	Index       int    `json:"index"`
	Offset      uint32 `json:"offset"`
	Size        uint32 `json:"size"`
	NumElements uint32 `json:"num_elements"`
}

type PageResponse struct {
	Object     string   `json:"object"`
	DocumentID string   `json:"document_id"`
	Index      int      `json:"index"`
	Elements   Elements `json:"elements"`
}

type VerifyResponse struct {
	Object string         `json:"object"`
	Valid  bool           `json:"valid"`
	Error  *ResponseError `json:"error,omitempty"`
}

type DeleteDocumentResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type ResponseError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      string `json:"code,omitempty"`
	PageIndex *int   `json:"page_index,omitempty"`
}

type errorEnvelope struct {
	Error ResponseError `json:"error"`
}

func pageSummaries(pages []ntuple.PageInfo) []PageSummary {
	out := make([]PageSummary, len(pages))
	for i, p := range pages {
		out[i] = PageSummary{
			Index:       i,
			Offset:      p.Offset,
			Size:        p.Size,
			NumElements: p.NumElements,
		}
	}
	return out
}

// Elements encodes page values as JSON numbers. NaN and infinities have no
// JSON form and are written as null.
type Elements []float32

func (e Elements) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("[]"), nil
	}
	b := make([]byte, 0, 2+len(e)*8)
	b = append(b, '[')
	for i, v := range e {
		if i > 0 {
			b = append(b, ',')
		}
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, f, 'g', -1, 32)
	}
	return append(b, ']'), nil
}
