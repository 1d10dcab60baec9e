package models

import (
	"fmt"
	"strings"
	"time"

	id "julee/pkg/domain"
	dErrors "julee/pkg/domain-errors"
)

// DocumentPolicyValidation is the aggregate root for one validation attempt:
// the durable, auditable record of validating a document against a policy,
// optionally transforming it, and re-validating.
//
// Invariants:
//   - InputDocumentID and PolicyID are non-empty (trimmed)
//   - ValidationScores obey the ScoreSet invariants; empty only while PENDING
//   - PostTransformValidationScores present only once TransformedDocumentID is set
//   - TransformedDocumentID is non-empty when present
//   - CompletedAt set exactly when Status is terminal
//   - ErrorMessage set only in ERROR, and non-empty there
//   - Passed is nil while in progress and on ERROR; non-nil only on PASSED/FAILED
//
// # Lifecycle
//
// One record per attempt: re-validating the same document/policy pair creates
// a new record so audit history is never overwritten. The orchestrator is the
// only writer, and every mutation passes through a transition method below,
// which checks Status.CanTransitionTo before touching any field. Terminal
// records are immutable.
//
// The second pass through VALIDATION_COMPLETE (after transformation) is
// distinguished by TransformedDocumentID being set, so the transformation
// branch is taken at most once; a record never loops.
type DocumentPolicyValidation struct {
	ValidationID                  id.ValidationID `json:"validation_id"`
	InputDocumentID               id.DocumentID   `json:"input_document_id"`
	PolicyID                      id.PolicyID     `json:"policy_id"`
	Status                        Status          `json:"status"`
	ValidationScores              ScoreSet        `json:"validation_scores"`
	TransformedDocumentID         id.DocumentID   `json:"transformed_document_id,omitempty"`
	PostTransformValidationScores ScoreSet        `json:"post_transform_validation_scores,omitempty"`
	StartedAt                     time.Time       `json:"started_at"`
	CompletedAt                   *time.Time      `json:"completed_at,omitempty"`
	ErrorMessage                  string          `json:"error_message,omitempty"`
	Passed                        *bool           `json:"passed,omitempty"`
	UpdatedAt                     time.Time       `json:"updated_at"`
}

// NewDocumentPolicyValidation constructs a PENDING record, rejecting invalid
// input synchronously. Nothing is persisted here; the caller saves the
// record through the repository.
func NewDocumentPolicyValidation(validationID id.ValidationID, documentID id.DocumentID, policyID id.PolicyID, now time.Time) (*DocumentPolicyValidation, error) {
	if validationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "validation id cannot be nil")
	}
	if strings.TrimSpace(documentID.String()) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "input document id cannot be empty")
	}
	if strings.TrimSpace(policyID.String()) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "policy id cannot be empty")
	}
	return &DocumentPolicyValidation{
		ValidationID:    validationID,
		InputDocumentID: id.DocumentID(strings.TrimSpace(documentID.String())),
		PolicyID:        id.PolicyID(strings.TrimSpace(policyID.String())),
		Status:          StatusPending,
		StartedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Validate checks the full set of record invariants for the current status.
// Stores run this before persisting and after loading so a malformed row is
// surfaced as a validation error instead of flowing into the state machine.
func (r *DocumentPolicyValidation) Validate() error {
	if r.ValidationID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "validation id cannot be nil")
	}
	if strings.TrimSpace(r.InputDocumentID.String()) == "" {
		return dErrors.New(dErrors.CodeValidation, "input document id cannot be empty")
	}
	if strings.TrimSpace(r.PolicyID.String()) == "" {
		return dErrors.New(dErrors.CodeValidation, "policy id cannot be empty")
	}
	if !r.Status.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown status %q", r.Status)
	}
	if err := Validate(r.ValidationScores); err != nil {
		return err
	}
	if err := Validate(r.PostTransformValidationScores); err != nil {
		return err
	}
	if len(r.ValidationScores) == 0 && r.Status != StatusPending && r.Status != StatusInProgress && r.Status != StatusError {
		return dErrors.Newf(dErrors.CodeValidation, "status %s requires validation scores", r.Status)
	}
	if len(r.PostTransformValidationScores) > 0 && r.TransformedDocumentID == "" {
		return dErrors.New(dErrors.CodeValidation, "post-transform scores require a transformed document id")
	}
	if r.Status.IsTerminal() != (r.CompletedAt != nil) {
		return dErrors.New(dErrors.CodeValidation, "completed_at must be set exactly on terminal status")
	}
	if r.ErrorMessage != "" && r.Status != StatusError {
		return dErrors.New(dErrors.CodeValidation, "error message permitted only in ERROR status")
	}
	if r.Status == StatusError && strings.TrimSpace(r.ErrorMessage) == "" {
		return dErrors.New(dErrors.CodeValidation, "ERROR status requires an error message")
	}
	switch r.Status {
	case StatusPassed:
		if r.Passed == nil || !*r.Passed {
			return dErrors.New(dErrors.CodeValidation, "PASSED status requires passed=true")
		}
	case StatusFailed:
		if r.Passed == nil || *r.Passed {
			return dErrors.New(dErrors.CodeValidation, "FAILED status requires passed=false")
		}
	default:
		if r.Passed != nil {
			return dErrors.Newf(dErrors.CodeValidation, "passed must be unset in status %s", r.Status)
		}
	}
	return nil
}

// Clone returns a deep copy so stores and callers never alias the same
// aggregate.
func (r *DocumentPolicyValidation) Clone() *DocumentPolicyValidation {
	if r == nil {
		return nil
	}
	out := *r
	out.ValidationScores = r.ValidationScores.Clone()
	out.PostTransformValidationScores = r.PostTransformValidationScores.Clone()
	if r.CompletedAt != nil {
		completed := *r.CompletedAt
		out.CompletedAt = &completed
	}
	if r.Passed != nil {
		passed := *r.Passed
		out.Passed = &passed
	}
	return &out
}

// IsTerminal reports whether the record admits no further transitions.
func (r *DocumentPolicyValidation) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// HasTransformed reports whether the transformation pass has produced a
// document. This is what distinguishes the second trip through
// VALIDATION_COMPLETE from the first.
func (r *DocumentPolicyValidation) HasTransformed() bool {
	return r.TransformedDocumentID != ""
}

// ActiveScores returns the score set the pass rule should judge: the
// post-transform set once a transformation has been re-validated, otherwise
// the initial set.
func (r *DocumentPolicyValidation) ActiveScores() ScoreSet {
	if len(r.PostTransformValidationScores) > 0 {
		return r.PostTransformValidationScores
	}
	return r.ValidationScores
}

func (r *DocumentPolicyValidation) transition(next Status) error {
	if !r.Status.CanTransitionTo(next) {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "illegal transition %s -> %s", r.Status, next)
	}
	r.Status = next
	return nil
}

// Start marks the run as begun. PENDING -> IN_PROGRESS.
func (r *DocumentPolicyValidation) Start(now time.Time) error {
	if err := r.transition(StatusInProgress); err != nil {
		return err
	}
	r.UpdatedAt = now
	return nil
}

// CompleteInitialValidation stores the first-pass score set.
// IN_PROGRESS -> VALIDATION_COMPLETE.
func (r *DocumentPolicyValidation) CompleteInitialValidation(scores ScoreSet, now time.Time) error {
	if len(scores) == 0 {
		return dErrors.New(dErrors.CodeValidation, "validation scores cannot be empty")
	}
	if err := Validate(scores); err != nil {
		return err
	}
	if err := r.transition(StatusValidationComplete); err != nil {
		return err
	}
	r.ValidationScores = scores.Clone()
	r.UpdatedAt = now
	return nil
}

// RequireTransformation records that the pass rule failed and the policy
// configures a transformation pass. VALIDATION_COMPLETE ->
// TRANSFORMATION_REQUIRED; illegal once a transformation has already run.
func (r *DocumentPolicyValidation) RequireTransformation(now time.Time) error {
	if r.HasTransformed() {
		return dErrors.New(dErrors.CodeInvariantViolation, "transformation may run at most once per record")
	}
	if err := r.transition(StatusTransformationRequired); err != nil {
		return err
	}
	r.UpdatedAt = now
	return nil
}

// StartTransformation marks the transformation pass as begun.
// TRANSFORMATION_REQUIRED -> TRANSFORMATION_IN_PROGRESS.
func (r *DocumentPolicyValidation) StartTransformation(now time.Time) error {
	if err := r.transition(StatusTransformationInProgress); err != nil {
		return err
	}
	r.UpdatedAt = now
	return nil
}

// CompleteTransformation stores the transformed document id.
// TRANSFORMATION_IN_PROGRESS -> TRANSFORMATION_COMPLETE.
func (r *DocumentPolicyValidation) CompleteTransformation(documentID id.DocumentID, now time.Time) error {
	trimmed := strings.TrimSpace(documentID.String())
	if trimmed == "" {
		return dErrors.New(dErrors.CodeValidation, "transformed document id cannot be empty")
	}
	if err := r.transition(StatusTransformationComplete); err != nil {
		return err
	}
	r.TransformedDocumentID = id.DocumentID(trimmed)
	r.UpdatedAt = now
	return nil
}

// CompleteRevalidation stores the score set from re-running validation
// against the transformed document. TRANSFORMATION_COMPLETE ->
// VALIDATION_COMPLETE. The initial ValidationScores are left untouched.
func (r *DocumentPolicyValidation) CompleteRevalidation(scores ScoreSet, now time.Time) error {
	if len(scores) == 0 {
		return dErrors.New(dErrors.CodeValidation, "post-transform validation scores cannot be empty")
	}
	if err := Validate(scores); err != nil {
		return err
	}
	if err := r.transition(StatusValidationComplete); err != nil {
		return err
	}
	r.PostTransformValidationScores = scores.Clone()
	r.UpdatedAt = now
	return nil
}

// Finalize records the pass-rule outcome. VALIDATION_COMPLETE -> PASSED or
// FAILED, sets Passed and CompletedAt.
func (r *DocumentPolicyValidation) Finalize(passed bool, now time.Time) error {
	next := StatusFailed
	if passed {
		next = StatusPassed
	}
	if err := r.transition(next); err != nil {
		return err
	}
	r.Passed = &passed
	r.CompletedAt = &now
	r.UpdatedAt = now
	return nil
}

// MarkError drives the record to terminal ERROR from any non-terminal
// status. The stage name is folded into the message so the audit trail
// records where the run died. Passed stays unset: ERROR means the engine
// could not complete evaluation, not that the policy was unmet.
func (r *DocumentPolicyValidation) MarkError(stage, message string, now time.Time) error {
	message = strings.TrimSpace(message)
	if message == "" {
		message = "unknown error"
	}
	if err := r.transition(StatusError); err != nil {
		return err
	}
	r.ErrorMessage = fmt.Sprintf("stage %s: %s", stage, message)
	r.CompletedAt = &now
	r.UpdatedAt = now
	return nil
}
