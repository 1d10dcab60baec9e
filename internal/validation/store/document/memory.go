// Package document provides the in-memory DocumentStore. Durable document
// storage is an external collaborator (the capture pipeline's blob store);
// this adapter backs tests, dev wiring, and transformed-document bookkeeping.
package document

import (
	"context"
	"sync"

	"julee/internal/validation/models"
	id "julee/pkg/domain"
	"julee/pkg/platform/sentinel"
)

type InMemory struct {
	mu        sync.RWMutex
	documents map[id.DocumentID]*models.Document
}

func NewInMemory() *InMemory {
	return &InMemory{documents: make(map[id.DocumentID]*models.Document)}
}

func (s *InMemory) Get(_ context.Context, documentID id.DocumentID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

// Put registers a document. Documents are immutable once captured, so an
// existing id is overwritten only with identical content in practice.
func (s *InMemory) Put(_ context.Context, doc *models.Document) error {
	if doc == nil {
		return sentinel.ErrInvalidState
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *doc
	s.documents[doc.ID] = &copied
	return nil
}

// Remove drops a document, simulating mid-run retraction in tests.
func (s *InMemory) Remove(_ context.Context, documentID id.DocumentID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, documentID)
}
