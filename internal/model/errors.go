package model

import (
	"errors"
	"fmt"
)

// Base error kinds, checked with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrResourceUnavailable = errors.New("resource unavailable")
)

// Error carries the failing operation alongside an error kind.
type Error struct {
	Op   string // e.g. "store.Update"
	Kind error  // one of the base kinds above
	Msg  string
	Err  error // underlying cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Unwrap returns the cause if there is one, otherwise the kind.
func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is matches either the kind or the cause.
func (e *Error) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

// NotFound builds an ErrNotFound error for op.
func NotFound(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// InvalidInput builds an ErrInvalidInput error for op.
func InvalidInput(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// Unavailable wraps err as ErrResourceUnavailable for op.
func Unavailable(op, msg string, err error) *Error {
	return &Error{Op: op, Kind: ErrResourceUnavailable, Msg: msg, Err: err}
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidInput reports whether err is an invalid-input error.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsUnavailable reports whether err is a resource-unavailable error.
func IsUnavailable(err error) bool { return errors.Is(err, ErrResourceUnavailable) }
