// Package order provides the Order aggregate of the workshop: a single repair
// or tailoring job tracked from intake to hand-over.
//
// The package includes:
//   - Order: the aggregate root owning status, timestamps and reminder flags
//   - Status: the lifecycle state machine and its transition graph
//   - ServiceCategory: the closed set of services a client can order
//   - Actor: who requested a change (administrator, client or scheduler)
//   - TransitionEvent: the record emitted for every completed status change
//
// Key business rules:
//   - Status only moves along new -> accepted -> in_progress -> completed -> issued,
//     with cancellation allowed from every non-terminal status except completed
//   - issued, cancelled and spam are terminal
//   - acceptedAt is set exactly when the order enters accepted
//   - feedbackRequested never goes back to false
//   - an order belongs to one user for its whole lifetime
package order
