package errs

import (
	"errors"
	"fmt"
)

var ErrConflict = errors.New("conflict")

// ConflictError reports that the persisted state of an entity does not allow
// the requested change. From and To describe the rejected move, usually a
// status pair.
type ConflictError struct {
	Entity string
	ID     any
	From   string
	To     string
	Cause  error
}

func NewConflictError(entity string, id any, from, to string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, From: from, To: to}
}

func NewConflictErrorWithCause(entity string, id any, from, to string, cause error) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, From: from, To: to, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s cannot move from %s to %s",
		ErrConflict, sanitize(e.Entity), sanitize(e.ID), sanitize(e.From), sanitize(e.To))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
