package validation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"julee/internal/validation/models"
	id "julee/pkg/domain"
	"julee/pkg/platform/sentinel"
	"julee/pkg/requestcontext"
)

// PostgresStore persists validation records in PostgreSQL. Score sets are
// stored as JSONB pair arrays, the same wire shape the aggregate marshals,
// so order and duplication stay representable and load-time Validate can
// catch corrupt rows.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const recordColumns = `validation_id, input_document_id, policy_id, status,
	validation_scores, transformed_document_id, post_transform_scores,
	started_at, completed_at, error_message, passed, updated_at`

func (s *PostgresStore) Get(ctx context.Context, validationID id.ValidationID) (*models.DocumentPolicyValidation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM document_policy_validations
		WHERE validation_id = $1
	`, validationID.String())

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get validation record: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) GetMany(ctx context.Context, validationIDs []id.ValidationID) (map[id.ValidationID]*models.DocumentPolicyValidation, error) {
	out := make(map[id.ValidationID]*models.DocumentPolicyValidation, len(validationIDs))
	for _, validationID := range validationIDs {
		record, err := s.Get(ctx, validationID)
		if errors.Is(err, sentinel.ErrNotFound) {
			out[validationID] = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		out[validationID] = record
	}
	return out, nil
}

func (s *PostgresStore) Save(ctx context.Context, record *models.DocumentPolicyValidation) error {
	if record == nil {
		return sentinel.ErrInvalidState
	}
	if err := record.Validate(); err != nil {
		return err
	}

	scores, err := json.Marshal(record.ValidationScores)
	if err != nil {
		return fmt.Errorf("marshal validation scores: %w", err)
	}
	var postScores []byte
	if len(record.PostTransformValidationScores) > 0 {
		postScores, err = json.Marshal(record.PostTransformValidationScores)
		if err != nil {
			return fmt.Errorf("marshal post-transform scores: %w", err)
		}
	}

	updatedAt := requestcontext.Now(ctx)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document_policy_validations (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (validation_id) DO UPDATE SET
			status = EXCLUDED.status,
			validation_scores = EXCLUDED.validation_scores,
			transformed_document_id = EXCLUDED.transformed_document_id,
			post_transform_scores = EXCLUDED.post_transform_scores,
			completed_at = EXCLUDED.completed_at,
			error_message = EXCLUDED.error_message,
			passed = EXCLUDED.passed,
			updated_at = EXCLUDED.updated_at
	`,
		record.ValidationID.String(),
		record.InputDocumentID.String(),
		record.PolicyID.String(),
		string(record.Status),
		scores,
		nullString(record.TransformedDocumentID.String()),
		postScores,
		record.StartedAt,
		record.CompletedAt,
		nullString(record.ErrorMessage),
		record.Passed,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("save validation record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.DocumentPolicyValidation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM document_policy_validations
		ORDER BY started_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list validation records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *PostgresStore) ListByDocument(ctx context.Context, documentID id.DocumentID) ([]*models.DocumentPolicyValidation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM document_policy_validations
		WHERE input_document_id = $1
		ORDER BY started_at DESC
	`, documentID.String())
	if err != nil {
		return nil, fmt.Errorf("list validation records by document: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *PostgresStore) NewID() id.ValidationID {
	return id.NewValidationID()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.DocumentPolicyValidation, error) {
	var (
		record        models.DocumentPolicyValidation
		validationID  string
		documentID    string
		policyID      string
		status        string
		scores        []byte
		transformedID sql.NullString
		postScores    []byte
		errorMessage  sql.NullString
		passed        sql.NullBool
		completedAt   sql.NullTime
	)
	if err := row.Scan(&validationID, &documentID, &policyID, &status, &scores,
		&transformedID, &postScores, &record.StartedAt, &completedAt,
		&errorMessage, &passed, &record.UpdatedAt); err != nil {
		return nil, err
	}

	parsedID, err := id.ParseValidationID(validationID)
	if err != nil {
		return nil, fmt.Errorf("parse stored validation id: %w", err)
	}
	record.ValidationID = parsedID
	record.InputDocumentID = id.DocumentID(documentID)
	record.PolicyID = id.PolicyID(policyID)

	parsedStatus, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	record.Status = parsedStatus

	if len(scores) > 0 {
		if err := json.Unmarshal(scores, &record.ValidationScores); err != nil {
			return nil, fmt.Errorf("decode validation scores: %w", err)
		}
	}
	if len(postScores) > 0 {
		if err := json.Unmarshal(postScores, &record.PostTransformValidationScores); err != nil {
			return nil, fmt.Errorf("decode post-transform scores: %w", err)
		}
	}
	if transformedID.Valid {
		record.TransformedDocumentID = id.DocumentID(transformedID.String)
	}
	if errorMessage.Valid {
		record.ErrorMessage = errorMessage.String
	}
	if passed.Valid {
		record.Passed = &passed.Bool
	}
	if completedAt.Valid {
		completed := completedAt.Time
		record.CompletedAt = &completed
	}

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("stored record violates invariants: %w", err)
	}
	return &record, nil
}

func scanRecords(rows *sql.Rows) ([]*models.DocumentPolicyValidation, error) {
	var out []*models.DocumentPolicyValidation
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
