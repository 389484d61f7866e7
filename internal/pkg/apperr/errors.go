// Package apperr classifies service errors so transports can map them to status codes.
package apperr

import (
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies the class of an application error
type Kind int

// Error kinds
const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
	KindLocked
	KindTooManyRequests
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindLocked:
		return "locked"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// Error is a classified error carrying a client safe message and an optional cause
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

// Format prints the cause with its stack trace for %+v
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.Err != nil {
		fmt.Fprintf(s, "%s: %+v", e.Message, e.Err)
		return
	}
	_, _ = io.WriteString(s, e.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, which lets errors.Is(err, apperr.ErrNotFound) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrLocked          = &Error{Kind: KindLocked}
	ErrTooManyRequests = &Error{Kind: KindTooManyRequests}
)

// NotFound creates a not found error
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Validation creates a validation error, optionally wrapping the validator failure
func Validation(message string, cause error) error {
	return &Error{Kind: KindValidation, Message: message, Err: cause}
}

// Conflict creates a conflict error
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unauthorized creates an authentication error
func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden creates an authorization error
func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Locked creates an error for temporarily locked resources
func Locked(message string) error {
	return &Error{Kind: KindLocked, Message: message}
}

// TooManyRequests creates a throttling error
func TooManyRequests(message string) error {
	return &Error{Kind: KindTooManyRequests, Message: message}
}

// Internal wraps an unexpected failure, recording the stack at the call site
func Internal(message string, cause error) error {
	return &Error{Kind: KindInternal, Message: message, Err: pkgerrors.WithStack(cause)}
}

// KindOf returns the kind of the first classified error in the chain, or KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client safe message of the first classified error in the chain.
// Validation messages include their cause so callers can see which field failed.
func MessageOf(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "internal server error"
	}
	if appErr.Kind == KindInternal {
		return "internal server error"
	}
	if appErr.Kind == KindValidation && appErr.Err != nil {
		return appErr.Error()
	}
	return appErr.Message
}

// PassThrough keeps classified errors intact and wraps anything else as an internal error.
func PassThrough(message string, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return err
	}
	return Internal(message, err)
}
