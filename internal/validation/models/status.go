package models

import (
	dErrors "julee/pkg/domain-errors"
)

// Status is the lifecycle state of a DocumentPolicyValidation.
//
// The transition graph is closed: every mutation on the aggregate checks
// CanTransitionTo, so a record can never reach a state the lifecycle does
// not allow. PASSED, FAILED, and ERROR are terminal.
type Status string

const (
	StatusPending                  Status = "PENDING"
	StatusInProgress               Status = "IN_PROGRESS"
	StatusValidationComplete       Status = "VALIDATION_COMPLETE"
	StatusTransformationRequired   Status = "TRANSFORMATION_REQUIRED"
	StatusTransformationInProgress Status = "TRANSFORMATION_IN_PROGRESS"
	StatusTransformationComplete   Status = "TRANSFORMATION_COMPLETE"
	StatusPassed                   Status = "PASSED"
	StatusFailed                   Status = "FAILED"
	StatusError                    Status = "ERROR"
)

// transitions encodes the legal edges of the state machine. ERROR is
// reachable from every non-terminal state (a run can be aborted at any
// stage, including when a referenced document or policy disappears mid-run).
var transitions = map[Status][]Status{
	StatusPending:                  {StatusInProgress, StatusError},
	StatusInProgress:               {StatusValidationComplete, StatusError},
	StatusValidationComplete:       {StatusPassed, StatusFailed, StatusTransformationRequired, StatusError},
	StatusTransformationRequired:   {StatusTransformationInProgress, StatusError},
	StatusTransformationInProgress: {StatusTransformationComplete, StatusError},
	StatusTransformationComplete:   {StatusValidationComplete, StatusError},
	StatusPassed:                   nil,
	StatusFailed:                   nil,
	StatusError:                    nil,
}

// IsValid reports whether s is one of the nine known statuses.
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusError
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseStatus validates a status literal read from storage or transport.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown validation status %q", s)
	}
	return status, nil
}
