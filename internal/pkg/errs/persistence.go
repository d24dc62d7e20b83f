package errs

import (
	"errors"
	"fmt"
)

var ErrPersistence = errors.New("persistence failure")

type PersistenceError struct {
	Operation string
	Cause     error
}

func NewPersistenceError(operation string) *PersistenceError {
	return &PersistenceError{Operation: operation}
}

func NewPersistenceErrorWithCause(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPersistence, sanitize(e.Operation), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPersistence, sanitize(e.Operation))
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}
