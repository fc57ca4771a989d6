// Package apperrors defines the error taxonomy shared across the service:
// every error a service or repository returns carries a Kind, and the
// transport layer decodes the Kind to an HTTP status. Nothing below the
// handlers knows about status codes.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInternal covers unexpected store or runtime failures.
	KindInternal Kind = iota
	// KindValidation covers missing or malformed caller input.
	KindValidation
	// KindNotFound covers unknown users and access codes.
	KindNotFound
	// KindConflict covers uniqueness violations and out-of-sequence punches.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a tagged error with a user-facing message and an optional cause.
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

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the Kind of err, unwrapping as needed. Untagged errors are
// internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the user-facing message of err. Untagged errors get a
// generic message so internal detail never leaks to callers.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}
