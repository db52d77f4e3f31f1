// Package apperr carries the outcome kind of a service call so the HTTP layer
// can pick a status code without inspecting driver errors.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	NotFound
	BadRequest
	Unauthorized
	Conflict
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case BadRequest:
		return "bad_request"
	case Unauthorized:
		return "unauthorized"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a failed operation tagged with its kind. Message is safe to show
// to clients; Err is the cause and is only logged.
type Error struct {
	Op      string
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func E(op string, kind Kind, message string, err error) *Error {
	return &Error{Op: op, Kind: kind, Message: message, Err: err}
}

func NotFoundf(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func BadRequestf(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: BadRequest, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an unexpected failure as Internal with a generic client message.
func Wrap(op, message string, err error) *Error {
	return &Error{Op: op, Kind: Internal, Message: message, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain. Anything else,
// including nil, is Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal server error"
}
