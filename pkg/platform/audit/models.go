package audit

import (
	"time"

	id "julee/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance.
	// These require tamper-proof storage and long retention. Examples:
	// validation outcomes, transformation provenance.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled or aggregated with shorter retention.
	// Examples: run started, stage retried.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category     EventCategory   `json:"category"`
	Timestamp    time.Time       `json:"timestamp"`
	Action       Action          `json:"action"`
	ValidationID id.ValidationID `json:"validation_id"`
	DocumentID   id.DocumentID   `json:"document_id"`
	PolicyID     id.PolicyID     `json:"policy_id"`
	// Stage names the orchestrator stage the event was emitted from, when
	// relevant (error events in particular).
	Stage string `json:"stage,omitempty"`
	// Reason carries the human-readable outcome detail: pass-rule verdict,
	// error message, transformed document id.
	Reason string `json:"reason,omitempty"`
	// RequestID is the correlation id from the originating request, if any.
	RequestID string `json:"request_id,omitempty"`
}

// Action names a validation lifecycle event.
type Action string

const (
	ActionValidationStarted   Action = "validation_started"
	ActionValidationPassed    Action = "validation_passed"
	ActionValidationFailed    Action = "validation_failed"
	ActionValidationError     Action = "validation_error"
	ActionDocumentTransformed Action = "document_transformed"
)
