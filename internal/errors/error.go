package errors

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth        = errors.New("missing authorization")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrEmptySubject     = errors.New("missing subject")
	ErrForbidden        = errors.New("admin role required")
	ErrEmailTaken       = NewInvalidOperation("user with this email already exists")
	ErrPasswordMismatch = errors.New("password mismatch")

	ErrEmptyCart = NewInvalidOperation("can't create order from empty cart")
)

// NotFoundError marks an entity that does not exist or is not visible to
// the caller. Ownership misses surface as NotFoundError too, so a client
// can't distinguish another user's entity from a missing one.
type NotFoundError struct {
	msg string
}

func NewNotFound(format string, args ...any) NotFoundError {
	return NotFoundError{msg: fmt.Sprintf(format, args...)}
}

func (e NotFoundError) Error() string { return e.msg }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// InvalidOperationError marks a business-rule violation, distinct from a
// missing entity.
type InvalidOperationError struct {
	msg string
}

func NewInvalidOperation(format string, args ...any) InvalidOperationError {
	return InvalidOperationError{msg: fmt.Sprintf(format, args...)}
}

func (e InvalidOperationError) Error() string { return e.msg }

func IsInvalidOperation(err error) bool {
	var target InvalidOperationError
	return errors.As(err, &target)
}

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
