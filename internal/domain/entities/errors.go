package entities

import (
	"errors"
	"fmt"
)

// ErrTodoNotFound is returned by stores when no row matches an id
var ErrTodoNotFound = errors.New("todo not found")

// ErrorKind tags the failure classes a todo operation can end with
type ErrorKind int

const (
	KindMissingField ErrorKind = iota + 1
	KindInvalidTimestamp
	KindNotFound
	KindConnectionFailure
	KindTransactionFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingField:
		return "missing_field"
	case KindInvalidTimestamp:
		return "invalid_timestamp"
	case KindNotFound:
		return "not_found"
	case KindConnectionFailure:
		return "connection_failure"
	case KindTransactionFailure:
		return "transaction_failure"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by the todo pipeline.
// Field is set for KindMissingField, ID for KindNotFound.
type Error struct {
	Kind   ErrorKind
	Field  string
	ID     int64
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case KindInvalidTimestamp:
		return e.Detail
	case KindNotFound:
		return fmt.Sprintf("todo %d not found", e.ID)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsClientError reports whether the caller can fix the request
func (e *Error) IsClientError() bool {
	return e.Kind == KindMissingField || e.Kind == KindInvalidTimestamp
}

func MissingField(name string) *Error {
	return &Error{Kind: KindMissingField, Field: name}
}

func InvalidTimestamp(cause error) *Error {
	return &Error{Kind: KindInvalidTimestamp, Detail: cause.Error(), Err: cause}
}

func NotFound(id int64) *Error {
	return &Error{Kind: KindNotFound, ID: id, Err: ErrTodoNotFound}
}

func ConnectionFailure(cause error) *Error {
	return &Error{Kind: KindConnectionFailure, Err: cause}
}

func TransactionFailure(cause error) *Error {
	return &Error{Kind: KindTransactionFailure, Err: cause}
}

// KindOf returns the kind of err, or 0 when err is not an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
