// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by all workflows.
//
// Stores return sentinel errors or wrapped driver errors; workflows classify
// them into one of the kinds below before they reach the HTTP layer, which
// maps kinds to status codes. Unclassified errors surface as internal.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and logging.
type Kind int

const (
	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = iota
	// KindValidation marks missing or malformed input (user-correctable).
	KindValidation
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound
	// KindConflict marks duplicate enrollment and similar state clashes.
	KindConflict
	// KindAuthorization marks the wrong account type for an operation.
	KindAuthorization
	// KindExternal marks a payment/mail/storage collaborator failure.
	KindExternal
	// KindIntegrity marks a multi-step mutation that partially failed and
	// left related documents out of sync. State is not rolled back.
	KindIntegrity
)

// Error carries a kind, a user-facing message, and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an Error of the given kind with a user-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation, NotFound, Conflict, Authorization, External, and Integrity are
// shorthands for the common kinds.
func Validation(message string) *Error    { return New(KindValidation, message) }
func NotFound(message string) *Error      { return New(KindNotFound, message) }
func Conflict(message string) *Error      { return New(KindConflict, message) }
func Authorization(message string) *Error { return New(KindAuthorization, message) }

func External(message string, err error) *Error  { return Wrap(KindExternal, message, err) }
func Integrity(message string, err error) *Error { return Wrap(KindIntegrity, message, err) }

// KindOf returns the kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of err. Unclassified errors get
// a generic message so internal detail never leaks to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	case KindExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
