package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "julee/pkg/domain"
	audit "julee/pkg/platform/audit"
)

// Store implements audit.Store on PostgreSQL. Append-only: rows are never
// updated or deleted by the engine.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, category, action, validation_id, document_id, policy_id, stage, reason, request_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		uuid.NewString(),
		string(event.Category),
		string(event.Action),
		event.ValidationID.String(),
		event.DocumentID.String(),
		event.PolicyID.String(),
		event.Stage,
		event.Reason,
		event.RequestID,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *Store) ListByValidation(ctx context.Context, validationID id.ValidationID) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, action, validation_id, document_id, policy_id, stage, reason, request_id, occurred_at
		FROM audit_events
		WHERE validation_id = $1
		ORDER BY occurred_at
	`, validationID.String())
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, action, validation_id, document_id, policy_id, stage, reason, request_id, occurred_at
		FROM audit_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var (
			event        audit.Event
			category     string
			action       string
			validationID string
			documentID   string
			policyID     string
		)
		if err := rows.Scan(&category, &action, &validationID, &documentID, &policyID, &event.Stage, &event.Reason, &event.RequestID, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		event.Action = audit.Action(action)
		parsed, err := id.ParseValidationID(validationID)
		if err != nil {
			return nil, fmt.Errorf("parse stored validation id: %w", err)
		}
		event.ValidationID = parsed
		event.DocumentID = id.DocumentID(documentID)
		event.PolicyID = id.PolicyID(policyID)
		events = append(events, event)
	}
	return events, rows.Err()
}
