package ports

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Writes are split by field group so a partial failure never leaves a
// half-applied group observable: status with its timestamps, ready date
// with master comment, reminder flags, feedback flag.
//
// Lookup misses return errs.ObjectNotFoundError, storage failures return
// errs.PersistenceError.
type OrderRepository interface {
	// Add inserts a new order and assigns its identifier.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// UpdateStatus writes status, acceptedAt and issuedAt only if the stored
	// status still equals expected. Returns errs.ConflictError otherwise.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// UpdateAcceptanceDetails writes ready date and master comment.
	UpdateAcceptanceDetails(ctx context.Context, aggregate *order.Order) error

	// UpdateReminderState writes clientReminded and lastReminderDate.
	UpdateReminderState(ctx context.Context, aggregate *order.Order) error

	// UpdateFeedbackState sets feedbackRequested. It never clears the flag.
	UpdateFeedbackState(ctx context.Context, aggregate *order.Order) error

	// ListByStatus returns orders in any of the given statuses, or all orders
	// when none is given, newest first.
	ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)

	// ListStaleNew returns New, not yet reminded orders created at or before
	// createdBefore whose last reminder is absent or at or before remindedBefore.
	ListStaleNew(ctx context.Context, createdBefore, remindedBefore time.Time) ([]*order.Order, error)

	// ListAcceptedBefore returns Accepted orders accepted at or before the instant.
	ListAcceptedBefore(ctx context.Context, acceptedBefore time.Time) ([]*order.Order, error)

	// ListPendingFeedback returns Issued orders issued at or before the
	// instant whose feedback was not requested yet.
	ListPendingFeedback(ctx context.Context, issuedBefore time.Time) ([]*order.Order, error)

	// SearchByClientName returns orders whose client name contains fragment,
	// case-insensitively, newest first.
	SearchByClientName(ctx context.Context, fragment string) ([]*order.Order, error)

	// ListByUser returns at most limit orders of the user, newest first.
	ListByUser(ctx context.Context, userID int64, limit int) ([]*order.Order, error)

	// CountByUser returns how many orders the user has placed.
	CountByUser(ctx context.Context, userID int64) (int64, error)
}
