// Package ports defines the interfaces the validation engine consumes.
// Interfaces live here when more than one service or package depends on
// them; concrete adapters (memory, Postgres, Redis, HTTP) implement them
// elsewhere and are injected through constructors, never resolved from an
// ambient container.
package ports

import (
	"context"
	"log/slog"

	"julee/internal/validation/models"
	id "julee/pkg/domain"
	"julee/pkg/platform/audit"
)

// ValidationStore persists DocumentPolicyValidation records.
//
// Save is an idempotent upsert: replaying a save after a crash must leave
// the row identical apart from the refreshed updated_at. Persisted status is
// the single source of truth for how far a record got; the orchestrator
// never keeps continuation state in memory across saves.
type ValidationStore interface {
	// Get retrieves one record. Returns sentinel.ErrNotFound (wrapped) when
	// the id is unknown.
	Get(ctx context.Context, validationID id.ValidationID) (*models.DocumentPolicyValidation, error)

	// GetMany retrieves a batch; absent ids map to nil rather than failing
	// the whole call.
	GetMany(ctx context.Context, validationIDs []id.ValidationID) (map[id.ValidationID]*models.DocumentPolicyValidation, error)

	// Save upserts a record and refreshes its UpdatedAt.
	Save(ctx context.Context, record *models.DocumentPolicyValidation) error

	// ListAll returns every record. Retention is an external concern;
	// records are never physically deleted.
	ListAll(ctx context.Context) ([]*models.DocumentPolicyValidation, error)

	// ListByDocument returns the validation history for one input document,
	// most recent first.
	ListByDocument(ctx context.Context, documentID id.DocumentID) ([]*models.DocumentPolicyValidation, error)

	// NewID mints a globally unique validation id. Callers must invoke it
	// outside any deterministic replay boundary.
	NewID() id.ValidationID
}

// PolicyStore reads policy configuration. Authoring happens in an external
// flow; the engine treats policies as immutable.
type PolicyStore interface {
	Get(ctx context.Context, policyID id.PolicyID) (*models.Policy, error)
	Save(ctx context.Context, policy *models.Policy) error
	ListAll(ctx context.Context) ([]*models.Policy, error)
}

// DocumentStore resolves document references for external calls.
type DocumentStore interface {
	Get(ctx context.Context, documentID id.DocumentID) (*models.Document, error)
}

// QueryInvoker executes one knowledge-service query against a document and
// returns an integer score in [0,100]. Failures (timeout, unavailability)
// must be distinguishable from a legitimate low score.
type QueryInvoker interface {
	Invoke(ctx context.Context, queryID id.QueryID, doc *models.Document) (int, error)
}

// TransformationExecutor produces a new, distinct document from the input.
// It never mutates its input, and re-invoking it before the orchestrator has
// persisted TRANSFORMATION_COMPLETE is acceptable: the orchestrator owns
// exactly-once bookkeeping via persisted status.
type TransformationExecutor interface {
	Transform(ctx context.Context, doc *models.Document, queryIDs []id.QueryID) (id.DocumentID, error)
}

// PassEvaluator decides whether a score set satisfies a policy. The exact
// thresholding rule is a policy-level decision, so the orchestrator only
// ever sees this interface.
type PassEvaluator interface {
	EvaluatePass(ctx context.Context, policy *models.Policy, scores models.ScoreSet) (bool, error)
}

// RunLocker serializes Run invocations per validation id so two
// orchestrators cannot race on one record. Acquire returns
// sentinel.ErrConflict (wrapped) when the lock is already held.
type RunLocker interface {
	Acquire(ctx context.Context, validationID id.ValidationID) error
	Release(ctx context.Context, validationID id.ValidationID) error
}

// AuditPublisher emits audit events for validation lifecycle changes.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// LogAudit emits an audit event and falls back to logging when no publisher
// is configured or emission fails. Audit failures never fail the operation.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event audit.Event) {
	if publisher != nil {
		if err := publisher.Emit(ctx, event); err == nil {
			return
		} else if logger != nil {
			logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
		}
	}
	if logger != nil {
		logger.InfoContext(ctx, "audit",
			"action", event.Action,
			"validation_id", event.ValidationID,
			"document_id", event.DocumentID,
			"policy_id", event.PolicyID,
			"reason", event.Reason,
		)
	}
}
