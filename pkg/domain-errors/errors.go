package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a caller-visible failure. The string value doubles as the
// machine-readable error code in HTTP responses.
type Code string

const (
	// CodeValidation covers malformed input rejected before any I/O.
	CodeValidation Code = "validation_error"
	// CodeBadRequest covers structurally invalid requests (missing body fields).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound means a well-formed identifier has no data behind it. This
	// is an expected outcome, not a fault.
	CodeNotFound Code = "not_found"
	// CodeUpstream means a provider was unreachable, errored, or returned
	// malformed data.
	CodeUpstream Code = "upstream_error"
	// CodeTimeout means the end-to-end request deadline was exceeded.
	CodeTimeout Code = "timeout"
	// CodeInternal is the catch-all for unexpected faults.
	CodeInternal Code = "internal_error"
)

// DomainError carries a failure code across layer boundaries. Services build
// these from sentinel errors; transport translates them to HTTP statuses.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New creates a DomainError with the given code and message.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Wrap annotates err with a code and message while preserving the chain.
func Wrap(err error, code Code, message string) error {
	return &DomainError{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability in tests.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// GetCode extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in this package.
func GetCode(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Message returns the caller-safe message for err. Internal errors yield an
// empty message so implementation details never leak to clients.
func Message(err error) string {
	var de *DomainError
	if errors.As(err, &de) && de.Code != CodeInternal {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps a domain code onto the HTTP status the transport layer
// should respond with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUpstream:
		return http.StatusBadGateway
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
