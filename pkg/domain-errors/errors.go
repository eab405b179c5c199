// Package domainerrors provides coded errors for the domain layer.
//
// Services attach a stable Code to every failure they surface so transport
// layers can translate errors without string matching. Stores return plain
// sentinel errors (pkg/platform/sentinel); services translate those into
// coded errors at the boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure. Codes are part of the public contract:
// the coordinator maps them onto the numeric transaction-result taxonomy.
type Code string

const (
	// CodeUnauthorized means the caller is not permitted to perform the
	// operation. Checked before all other validation.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound means a referenced record does not exist in its registry.
	CodeNotFound Code = "not_found"
	// CodeInvalidInput means the payload itself is malformed (out-of-range
	// value, empty required field, unknown status literal).
	CodeInvalidInput Code = "invalid_input"
	// CodeInvalidState means the record exists but is not in a state that
	// permits the requested transition.
	CodeInvalidState Code = "invalid_state"
	// CodeConflict means the operation collides with an existing record,
	// e.g. re-adding a caller-supplied ID.
	CodeConflict Code = "conflict"
	// CodeInternal covers unexpected infrastructure failures.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. Construct via New or Wrap.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates an underlying error with a code and message. The cause stays
// reachable through errors.Unwrap for logging; callers branch on the code.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors so infrastructure failures never masquerade as domain outcomes.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the human-readable message, falling back to Error().
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
