package workflow

import (
	"errors"
	"fmt"
)

// Kind classifies a recoverable workflow rejection.
type Kind string

const (
	KindUnauthorized        Kind = "unauthorized"
	KindInvalidTransition   Kind = "invalid_transition"
	KindCapacityExceeded    Kind = "capacity_exceeded"
	KindDuplicateAssignment Kind = "duplicate_assignment"
	KindNotAssigned         Kind = "not_assigned"
	KindAlreadyReviewed     Kind = "already_reviewed"
	KindAlreadyDecided      Kind = "already_decided"
	KindInvalidRating       Kind = "invalid_rating"
	KindNotFound            Kind = "not_found"
	KindInvalidInput        Kind = "invalid_input"
)

// Error is a user facing rejection. No write has happened when one is returned.
// Field names the request field the error should be attached to, if any.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on Kind so errors.Is(err, ErrCapacityExceeded) holds for any
// capacity error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnauthorized        = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrInvalidTransition   = &Error{Kind: KindInvalidTransition, Message: "invalid status transition"}
	ErrCapacityExceeded    = &Error{Kind: KindCapacityExceeded, Message: "reviewer capacity exceeded"}
	ErrDuplicateAssignment = &Error{Kind: KindDuplicateAssignment, Message: "reviewer already assigned"}
	ErrNotAssigned         = &Error{Kind: KindNotAssigned, Message: "not assigned"}
	ErrAlreadyReviewed     = &Error{Kind: KindAlreadyReviewed, Message: "already reviewed"}
	ErrAlreadyDecided      = &Error{Kind: KindAlreadyDecided, Message: "already decided"}
	ErrInvalidRating       = &Error{Kind: KindInvalidRating, Message: "invalid rating"}
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput, Message: "invalid input"}
)

func newError(kind Kind, field string, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the workflow kind of err, or "" for infrastructure errors.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}
