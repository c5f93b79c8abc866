package models

import (
	"github.com/pkg/errors"
)

// Error taxonomy surfaced to callers; test with errors.Is
var (
	// ErrConnection means the store is unreachable or did not answer in time
	ErrConnection = errors.New("store connection failed")
	// ErrSchema means traffic_logs lacks an expected column
	ErrSchema = errors.New("unexpected store schema")
	// ErrQuery means a report was malformed or failed in the store
	ErrQuery = errors.New("query failed")
	// ErrField means an aggregation named an unknown or unsuitable field
	ErrField = errors.New("invalid field")
)

// kindError attaches a taxonomy sentinel to a cause
type kindError struct {
	kind  error
	cause error
	msg   string
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.msg + ": " + e.kind.Error()
	}
	return e.msg + ": " + e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Is(target error) bool { return target == e.kind }

func (e *kindError) Unwrap() error { return e.cause }

func newKind(kind, cause error, format string, args ...any) error {
	return errors.WithStack(&kindError{
		kind:  kind,
		cause: cause,
		msg:   errors.Errorf(format, args...).Error(),
	})
}

// ConnectionError wraps cause as ErrConnection
func ConnectionError(cause error, format string, args ...any) error {
	return newKind(ErrConnection, cause, format, args...)
}

// SchemaError wraps cause as ErrSchema; cause may be nil
func SchemaError(cause error, format string, args ...any) error {
	return newKind(ErrSchema, cause, format, args...)
}

// QueryError wraps cause as ErrQuery
func QueryError(cause error, format string, args ...any) error {
	return newKind(ErrQuery, cause, format, args...)
}

// FieldError reports an unusable field name
func FieldError(field Field, reason string) error {
	return newKind(ErrField, nil, "field %q %s", string(field), reason)
}
