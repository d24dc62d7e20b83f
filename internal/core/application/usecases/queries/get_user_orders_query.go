package queries

import (
	"context"
	"errors"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

// UserHistoryLimit is the number of orders a client sees in their history.
const UserHistoryLimit = 5

var (
	ErrGetUserOrdersQueryIsNotConstructed = errors.New(
		"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
	)
)

// GetUserOrdersQuery lists the latest orders of one client.
type GetUserOrdersQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewGetUserOrdersQuery(userID int64) (GetUserOrdersQuery, error) {
	if userID <= 0 {
		return GetUserOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("userId", errors.New("must be positive"))
	}
	return GetUserOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

func (q GetUserOrdersQuery) UserID() int64 {
	return q.userID
}

type GetUserOrdersQueryHandler struct {
	orders OrderReader
}

func NewGetUserOrdersQueryHandler(orders OrderReader) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{orders: orders}
}

func (h GetUserOrdersQueryHandler) Handle(ctx context.Context, query GetUserOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.ListByUser(ctx, query.UserID(), UserHistoryLimit)
	if err != nil {
		return nil, err
	}
	return toSummaries(orders), nil
}
