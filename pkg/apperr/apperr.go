// Package apperr defines the typed error taxonomy shared by every Vypar service.
//
// Services return these errors; the HTTP boundary (pkg/response) translates
// each kind into exactly one status code. Nothing in between inspects error
// strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// KindValidation — structural input failures, carries a field list (400).
	KindValidation Kind = iota
	// KindUnauthenticated — missing/invalid/expired credential (401).
	KindUnauthenticated
	// KindNotPaid — operation requires a payment that does not exist (402).
	KindNotPaid
	// KindAccessDenied — role or ownership gate failed (403).
	KindAccessDenied
	// KindNotFound — resource does not exist (404).
	KindNotFound
	// KindConflict — uniqueness violation or state conflict (409).
	KindConflict
	// KindAlreadyPaid — mutation blocked because a payment exists (409).
	KindAlreadyPaid
	// KindInternalToken — token signing failure, fatal and non-retryable (500).
	KindInternalToken
	// KindInternal — anything unrecognized (500).
	KindInternal
)

// Error is the typed error carried from services to the boundary.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds ordered "field: message" entries for validation errors.
	Fields []string
	// Err is the wrapped cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotPaid:
		return http.StatusPaymentRequired
	case KindAccessDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindAlreadyPaid:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Name returns the short error name used in the response body.
func (e *Error) Name() string {
	switch e.Kind {
	case KindValidation:
		return "Validation error"
	case KindUnauthenticated:
		return "Unauthorized"
	case KindNotPaid:
		return "Payment required"
	case KindAccessDenied:
		return "Forbidden"
	case KindNotFound:
		return "Resource not found"
	case KindConflict:
		return "Conflict"
	case KindAlreadyPaid:
		return "Order already paid"
	case KindInternalToken:
		return "Token error"
	default:
		return "Internal server error"
	}
}

// ── Constructors ─────────────────────────────────────────────────────────────

// Validation builds a 400 error from ordered "field: message" strings.
func Validation(fields []string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation failed: " + strings.Join(fields, "; "),
		Fields:  fields,
	}
}

// Unauthenticated builds a 401 error.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// AccessDenied builds a 403 error.
func AccessDenied(msg string) *Error {
	return &Error{Kind: KindAccessDenied, Message: msg}
}

// NotFound builds a 404 error for a named resource.
func NotFound(resource string, id interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", resource, id)}
}

// Conflict builds a 409 error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// AlreadyPaid signals that an order's payment blocks the requested mutation.
func AlreadyPaid(orderID uint) *Error {
	return &Error{Kind: KindAlreadyPaid, Message: fmt.Sprintf("order %d already has a payment", orderID)}
}

// NotPaid signals that an order cannot enter (or be created in) the PAID state
// without a payment.
func NotPaid(orderID uint) *Error {
	return &Error{Kind: KindNotPaid, Message: fmt.Sprintf("order %d has no payment", orderID)}
}

// InternalToken wraps a token signing failure.
func InternalToken(err error) *Error {
	return &Error{Kind: KindInternalToken, Message: "token signing failed", Err: err}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// ── Inspection ───────────────────────────────────────────────────────────────

// From extracts an *Error from err. Unrecognized errors come back as
// KindInternal so the boundary always has something well-formed to render.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
