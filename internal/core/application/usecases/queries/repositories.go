// Package queries contains read-only operations over orders. Queries never
// mutate state and are safe to run concurrently with any command.
package queries

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

// OrderReader is the read side of the order repository.
type OrderReader interface {
	Get(ctx context.Context, id int64) (*order.Order, error)
	ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)
	SearchByClientName(ctx context.Context, fragment string) ([]*order.Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*order.Order, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}
