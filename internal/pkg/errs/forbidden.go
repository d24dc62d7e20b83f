package errs

import (
	"errors"
	"fmt"
)

var ErrForbidden = errors.New("action is forbidden")

type ForbiddenError struct {
	ActorID any
	Action  string
}

func NewForbiddenError(actorID any, action string) *ForbiddenError {
	return &ForbiddenError{ActorID: actorID, Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: actor %s cannot %s", ErrForbidden, sanitize(e.ActorID), sanitize(e.Action))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
