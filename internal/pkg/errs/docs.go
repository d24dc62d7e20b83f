// Package errs provides standardized error types for the workshop application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package maps the order lifecycle error taxonomy onto concrete types:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed
//     input rejected before any mutation
//   - ObjectNotFoundError: unknown order or user identifier
//   - ConflictError: the persisted state does not allow the requested change
//   - ForbiddenError: the actor is not allowed to perform the operation
//   - DeliveryError: an outbound message could not be delivered
//   - PersistenceError: the repository failed to read or write
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
//
// Callers classify errors with errors.Is against the sentinels and never
// inspect message text.
package errs
