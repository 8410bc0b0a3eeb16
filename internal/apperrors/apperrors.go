// Package apperrors separates failures the relay can outlive from the ones it cannot.
//
// Configuration errors (bad destination address, malformed wallet response, invalid settings)
// stop the current invocation before the settlement loop starts. Operational errors (RPC
// failures, rejected submissions, gas estimation) are absorbed by the loop and retried on the
// next cycle.
package apperrors

import (
	"github.com/pkg/errors"
)

type Kind string

const (
	KindConfig      Kind = "config"
	KindOperational Kind = "operational"
)

// Error carries a Kind next to its cause.
type Error struct {
	Kind  Kind
	Op    string
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Op == "" {
		return string(e.Kind) + ": " + e.Cause.Error()
	}

	return string(e.Kind) + ": " + e.Op + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewConfig wraps cause as a configuration error. Wrapping an error that already is a
// configuration error returns it untouched.
func NewConfig(op string, cause error) error {
	return wrap(KindConfig, op, cause)
}

// NewOperational wraps cause as an operational error.
func NewOperational(op string, cause error) error {
	return wrap(KindOperational, op, cause)
}

func wrap(kind Kind, op string, cause error) error {
	if cause == nil {
		return nil
	}

	var existing *Error
	if errors.As(cause, &existing) && existing.Kind == kind {
		return cause
	}

	return &Error{Kind: kind, Op: op, Cause: cause}
}

// KindOf returns the kind of the outermost classified error in the chain, or "" when the error
// was never classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}

func IsConfig(err error) bool {
	return KindOf(err) == KindConfig
}

func IsOperational(err error) bool {
	return KindOf(err) == KindOperational
}
