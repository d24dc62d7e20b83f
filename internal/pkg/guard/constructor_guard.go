// Package guard lets aggregates detect whether they were built through their
// constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into aggregates and entities. Only the
// designated constructors (NewX and RestoreX) set it, so a zero-value struct
// fails validation before any behaviour runs on it.
//
// Example usage:
//
//	var ErrSessionNotConstructed = errors.New("session must be created via NewSession")
//
//	type Session struct {
//	    userID int64
//	    guard  guard.ConstructorGuard
//	}
//
//	func (s *Session) Validate() error {
//	    return s.guard.Validate(ErrSessionNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guarded object was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
