// Package apperr defines the typed error kinds returned by storefront
// services. Resolvers match on Kind with errors.Is-style helpers and map
// each kind to a user-facing message; internal detail stays in the wrapped
// cause.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure.
type Kind int

const (
	// Unauthenticated means no signed-in user was present on the request.
	Unauthenticated Kind = iota + 1
	// Forbidden means the caller lacks ownership or a required permission.
	Forbidden
	// NotFound means the referenced user, item, cart line or token is gone.
	NotFound
	// ValidationFailed covers bad input: mismatched password confirmation,
	// unknown permission names, empty-cart checkout.
	ValidationFailed
	// PaymentFailed covers gateway declines, invalid tokens and gateway
	// timeouts. No writes have happened when this is returned.
	PaymentFailed
	// StoreUnavailable covers database connectivity failures.
	StoreUnavailable
	// Inconsistent means the charge succeeded but the order record could
	// not be persisted. The charge id must be retained for reconciliation.
	Inconsistent
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case ValidationFailed:
		return "validation_failed"
	case PaymentFailed:
		return "payment_failed"
	case StoreUnavailable:
		return "store_unavailable"
	case Inconsistent:
		return "inconsistent"
	default:
		return "unknown"
	}
}

// Error carries a kind, a message safe to show to the caller, and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with a caller-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// UserMessage returns the message safe to surface to the caller.
// Inconsistent errors are masked: the charge id and cause belong in the
// reconciliation trail, not the API response.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Something went wrong"
	}
	if e.Kind == Inconsistent {
		return "There was an issue processing your order. Our team has been notified."
	}
	return e.Message
}
