package audit

import (
	"context"
	"time"

	id "julee/pkg/domain"
)

// Store is the persistence contract for audit events. Append-only; events
// are never updated or deleted by this engine.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByValidation(ctx context.Context, validationID id.ValidationID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.store.Append(ctx, event)
}

func (p *Publisher) List(ctx context.Context, validationID id.ValidationID) ([]Event, error) {
	return p.store.ListByValidation(ctx, validationID)
}
