// Package services provides stateless domain services of the workshop.
//
// The package includes:
//   - Client and administrator message templates keyed by order status
//   - Texts of the reminder, feedback and stuck-order sweeps
//   - Broadcast progress and summary texts
//
// Templates never decide whether a message is sent; they only render text.
// Delivery and its failure handling belong to the application layer.
package services
