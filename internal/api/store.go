package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/dmmy/pkg/ntuple"
)

type documentRecord struct {
	Summary  DocumentResponse
	Document *ntuple.Document
}

// DocumentStore keeps decoded documents in memory, keyed by ID.
type DocumentStore struct {
	mu        sync.Mutex
	documents map[string]*documentRecord
	limit     int
	order     []string
}

// NewDocumentStore returns a store holding at most limit documents; the
// oldest is evicted first. limit <= 0 means unbounded.
func NewDocumentStore(limit int) *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*documentRecord),
		limit:     limit,
	}
}

func (s *DocumentStore) Create(layout *ntuple.Layout, doc *ntuple.Document, size int, now time.Time) DocumentResponse {
	id := newDocumentID()
	summary := DocumentResponse{
		ID:           id,
		Object:       "document",
		CreatedAt:    now.Unix(),
		Name:         doc.Name,
		Description:  doc.Description,
		SizeBytes:    size,
		PageCount:    len(doc.Pages),
		ElementCount: doc.NumElements(),
		Pages:        pageSummaries(layout.Pages),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[id] = &documentRecord{Summary: summary, Document: doc}
	s.order = append(s.order, id)
	if s.limit > 0 {
		for len(s.documents) > s.limit && len(s.order) > 0 {
			delete(s.documents, s.order[0])
			s.order = s.order[1:]
		}
	}
	return summary
}

func (s *DocumentStore) Get(id string) (*documentRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.documents[id]
	return rec, ok
}

func (s *DocumentStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return false
	}
	delete(s.documents, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *DocumentStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.documents)
}

func newDocumentID() string {
	return "doc_" + uuid.NewString()
}
