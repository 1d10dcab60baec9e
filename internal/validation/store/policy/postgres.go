package policy

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"julee/internal/validation/models"
	id "julee/pkg/domain"
	"julee/pkg/platform/sentinel"
)

// PostgresStore persists policies in PostgreSQL. Query lists are stored as
// JSONB so declaration order survives round-trips.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, policyID id.PolicyID) (*models.Policy, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT policy_id, title, validation_queries, transformation_queries, created_at, updated_at
		FROM policies
		WHERE policy_id = $1
	`, policyID.String())

	policy, err := scanPolicy(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get policy: %w", err)
	}
	return policy, nil
}

func (s *PostgresStore) Save(ctx context.Context, policy *models.Policy) error {
	if policy == nil {
		return sentinel.ErrInvalidState
	}
	validationQueries, err := json.Marshal(policy.ValidationQueries)
	if err != nil {
		return fmt.Errorf("marshal validation queries: %w", err)
	}
	transformationQueries, err := json.Marshal(policy.TransformationQueries)
	if err != nil {
		return fmt.Errorf("marshal transformation queries: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO policies (policy_id, title, validation_queries, transformation_queries, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (policy_id) DO UPDATE SET
			title = EXCLUDED.title,
			validation_queries = EXCLUDED.validation_queries,
			transformation_queries = EXCLUDED.transformation_queries,
			updated_at = EXCLUDED.updated_at
	`,
		policy.ID.String(),
		policy.Title,
		validationQueries,
		transformationQueries,
		policy.CreatedAt,
		policy.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save policy: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.Policy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT policy_id, title, validation_queries, transformation_queries, created_at, updated_at
		FROM policies
		ORDER BY policy_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var out []*models.Policy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, policy)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row rowScanner) (*models.Policy, error) {
	var (
		policy                models.Policy
		policyID              string
		validationQueries     []byte
		transformationQueries []byte
	)
	if err := row.Scan(&policyID, &policy.Title, &validationQueries, &transformationQueries, &policy.CreatedAt, &policy.UpdatedAt); err != nil {
		return nil, err
	}
	policy.ID = id.PolicyID(policyID)
	if err := json.Unmarshal(validationQueries, &policy.ValidationQueries); err != nil {
		return nil, fmt.Errorf("decode validation queries: %w", err)
	}
	if len(transformationQueries) > 0 {
		if err := json.Unmarshal(transformationQueries, &policy.TransformationQueries); err != nil {
			return nil, fmt.Errorf("decode transformation queries: %w", err)
		}
	}
	return &policy, nil
}
