// Package derrors provides coded domain errors.
//
// A coded error pairs a stable machine-readable Code with a human-readable
// message. Services create and wrap errors here; transports translate codes
// into protocol shapes (HTTP status, audit reason) without string matching.
//
// Store and infrastructure layers return sentinel errors
// (pkg/platform/sentinel) for resource facts; services translate those into
// coded errors at the domain boundary.
package derrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for programmatic handling.
type Code string

const (
	// CodeValidation marks malformed domain input: empty ids, duplicate
	// query ids, out-of-range scores. Fatal, never retried.
	CodeValidation Code = "validation"

	// CodeInvalidInput marks a value rejected at a trust boundary before it
	// reaches domain logic (unparseable ids, bad enum literals).
	CodeInvalidInput Code = "invalid_input"

	// CodeInvariantViolation marks an aggregate state transition that the
	// lifecycle rules forbid.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeNotFound marks a referenced entity that does not exist.
	CodeNotFound Code = "not_found"

	// CodeConflict marks an operation rejected because another writer holds
	// the resource.
	CodeConflict Code = "conflict"

	// CodeTimeout marks an external call that exceeded its deadline.
	CodeTimeout Code = "timeout"

	// CodeUnavailable marks an external collaborator failure. Recoverable at
	// the host-retry layer.
	CodeUnavailable Code = "unavailable"

	// CodeBadRequest marks a malformed transport-level request.
	CodeBadRequest Code = "bad_request"

	// CodeInternal marks an unexpected engine fault.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. It may wrap an underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message. Returns nil if err is nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err, or any error in its chain, carries code.
func HasCode(err error, code Code) bool {
	var domainErr *Error
	for errors.As(err, &domainErr) {
		if domainErr.Code == code {
			return true
		}
		err = domainErr.Err
		domainErr = nil
	}
	return false
}

// CodeOf returns the code of the outermost coded error in the chain, or
// CodeInternal if err carries no code.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// MessageOf returns the message of the outermost coded error in the chain,
// or the raw error text if err carries no code.
func MessageOf(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
