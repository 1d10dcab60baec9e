// Package validation provides the persistence adapters for
// DocumentPolicyValidation records: an in-memory store for tests and
// single-process deployments, and a PostgreSQL store for durable ones.
package validation

import (
	"context"
	"sort"
	"sync"

	"julee/internal/validation/models"
	id "julee/pkg/domain"
	"julee/pkg/platform/sentinel"
	"julee/pkg/requestcontext"
)

// InMemory is a thread-safe map-backed ValidationStore. Records are deep
// copied on the way in and out so callers never alias store state.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.ValidationID]*models.DocumentPolicyValidation
}

func NewInMemory() *InMemory {
	return &InMemory{
		records: make(map[id.ValidationID]*models.DocumentPolicyValidation),
	}
}

func (s *InMemory) Get(_ context.Context, validationID id.ValidationID) (*models.DocumentPolicyValidation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[validationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return record.Clone(), nil
}

func (s *InMemory) GetMany(_ context.Context, validationIDs []id.ValidationID) (map[id.ValidationID]*models.DocumentPolicyValidation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.ValidationID]*models.DocumentPolicyValidation, len(validationIDs))
	for _, validationID := range validationIDs {
		out[validationID] = s.records[validationID].Clone()
	}
	return out, nil
}

func (s *InMemory) Save(ctx context.Context, record *models.DocumentPolicyValidation) error {
	if record == nil {
		return sentinel.ErrInvalidState
	}
	if err := record.Validate(); err != nil {
		return err
	}
	stored := record.Clone()
	stored.UpdatedAt = requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[stored.ValidationID] = stored
	return nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.DocumentPolicyValidation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.DocumentPolicyValidation, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}

func (s *InMemory) ListByDocument(_ context.Context, documentID id.DocumentID) ([]*models.DocumentPolicyValidation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.DocumentPolicyValidation
	for _, record := range s.records {
		if record.InputDocumentID == documentID {
			out = append(out, record.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

func (s *InMemory) NewID() id.ValidationID {
	return id.NewValidationID()
}
