package memory

import (
	"context"
	"sync"

	id "julee/pkg/domain"
	audit "julee/pkg/platform/audit"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByValidation(_ context.Context, validationID id.ValidationID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []audit.Event
	for _, event := range s.events {
		if event.ValidationID == validationID {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

// ListRecent returns the most recent N events across all validations.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	recent := make([]audit.Event, limit)
	copy(recent, s.events[len(s.events)-limit:])
	return recent, nil
}
