// Package domain defines the typed identifiers shared across the engine.
//
// Identifiers come in two shapes:
//   - ValidationID is UUID-backed: this engine mints it and owns its format.
//   - DocumentID, PolicyID, and QueryID are opaque strings minted by the
//     capture, authoring, and knowledge services. We never parse structure
//     out of them; we only reject empty or whitespace-only values at trust
//     boundaries.
//
// Distinct types keep a DocumentID from ever being passed where a PolicyID
// is expected; the compiler enforces what a string parameter cannot.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "julee/pkg/domain-errors"
)

// ValidationID identifies one validation attempt. Assigned at record
// creation, never reused.
type ValidationID uuid.UUID

// DocumentID references a captured document in the external document store.
type DocumentID string

// PolicyID references an immutable policy configuration.
type PolicyID string

// QueryID names a knowledge-service query (validation or transformation).
type QueryID string

// NewValidationID mints a fresh validation identifier.
func NewValidationID() ValidationID {
	return ValidationID(uuid.New())
}

// ParseValidationID parses and validates a validation ID from its string form.
func ParseValidationID(s string) (ValidationID, error) {
	if s == "" {
		return ValidationID{}, dErrors.New(dErrors.CodeInvalidInput, "validation id cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return ValidationID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "validation id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return ValidationID{}, dErrors.New(dErrors.CodeInvalidInput, "validation id cannot be the nil UUID")
	}
	return ValidationID(parsed), nil
}

func (v ValidationID) String() string {
	return uuid.UUID(v).String()
}

// IsNil reports whether the ID is the zero value.
func (v ValidationID) IsNil() bool {
	return uuid.UUID(v) == uuid.Nil
}

// MarshalText serializes the ID in canonical UUID form so JSON and text
// encoders emit a string, not a byte array.
func (v ValidationID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(v).String()), nil
}

// UnmarshalText parses the canonical UUID form.
func (v *ValidationID) UnmarshalText(data []byte) error {
	parsed, err := uuid.Parse(string(data))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "validation id must be a valid UUID")
	}
	*v = ValidationID(parsed)
	return nil
}

// ParseDocumentID validates an externally supplied document identifier.
// Leading and trailing whitespace is trimmed before validation.
func ParseDocumentID(s string) (DocumentID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "document id cannot be empty")
	}
	return DocumentID(trimmed), nil
}

// ParsePolicyID validates an externally supplied policy identifier.
func ParsePolicyID(s string) (PolicyID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "policy id cannot be empty")
	}
	return PolicyID(trimmed), nil
}

// ParseQueryID validates an externally supplied query identifier.
// Query IDs are case-sensitive; no normalization beyond trimming is applied.
func ParseQueryID(s string) (QueryID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "query id cannot be empty")
	}
	return QueryID(trimmed), nil
}

func (d DocumentID) String() string { return string(d) }
func (p PolicyID) String() string   { return string(p) }
func (q QueryID) String() string    { return string(q) }
