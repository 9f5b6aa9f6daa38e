// Package apperr classifies failures so handlers can map them to HTTP status
// codes without string matching.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInternal covers unexpected failures, including broken transactions.
	KindInternal Kind = iota
	// KindValidation is malformed or out-of-range input. Never retried.
	KindValidation
	// KindNotFound means the target record does not exist (or no longer does).
	KindNotFound
	// KindConflict means the desired end state is already reached or
	// unreachable: already joined, already activated, capacity exceeded.
	KindConflict
	// KindProvider is a failed external payment-provider call. The operation
	// committed no state and may be retried by the caller.
	KindProvider
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Provider wraps a payment-provider failure. msg is what the caller sees;
// the wrapped error stays in logs only.
func Provider(err error, msg string) error {
	return &Error{Kind: KindProvider, Msg: msg, Err: err}
}

func Internal(err error) error {
	return &Error{Kind: KindInternal, Msg: "internal error", Err: err}
}

// KindOf reports the classification of err, KindInternal if unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message is the user-facing text for err. Provider errors deliberately keep
// their generic message so provider internals never leak to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal error"
}
