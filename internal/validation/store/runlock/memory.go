// Package runlock serializes Run invocations per validation id. The memory
// locker covers a single process; the Redis locker extends the single-writer
// guarantee across replicas.
package runlock

import (
	"context"
	"sync"

	id "julee/pkg/domain"
	"julee/pkg/platform/sentinel"
)

// InMemory is a process-local RunLocker.
type InMemory struct {
	mu   sync.Mutex
	held map[id.ValidationID]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{held: make(map[id.ValidationID]struct{})}
}

func (l *InMemory) Acquire(_ context.Context, validationID id.ValidationID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.held[validationID]; taken {
		return sentinel.ErrConflict
	}
	l.held[validationID] = struct{}{}
	return nil
}

func (l *InMemory) Release(_ context.Context, validationID id.ValidationID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, validationID)
	return nil
}
