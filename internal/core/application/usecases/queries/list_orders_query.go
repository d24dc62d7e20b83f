package queries

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/guard"
)

// PageSize is the number of orders per listing page.
const PageSize = 8

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery selects one page of orders, newest first. Page indexes are
// zero based and clamped by the handler, so any integer is accepted.
//
// Example:
//
//	filter, _ := ParseStatusFilter("in_progress")
//	page, err := handler.Handle(ctx, NewListOrdersQuery(filter, 0))
type ListOrdersQuery struct {
	filter StatusFilter
	page   int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter StatusFilter, page int) ListOrdersQuery {
	return ListOrdersQuery{filter: filter, page: page, guard: guard.NewConstructorGuard()}
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() StatusFilter {
	return q.filter
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

// OrderPage is a page of a listing. Page is the clamped index actually served.
type OrderPage struct {
	Filter    string         `json:"filter"`
	Orders    []OrderSummary `json:"orders"`
	Page      int            `json:"page"`
	PageCount int            `json:"pageCount"`
	Total     int            `json:"total"`
}

// HasPrev reports whether a previous page exists.
func (p OrderPage) HasPrev() bool {
	return p.Page > 0
}

// HasNext reports whether a next page exists.
func (p OrderPage) HasNext() bool {
	return p.Page < p.PageCount-1
}

type ListOrdersQueryHandler struct {
	orders OrderReader
}

func NewListOrdersQueryHandler(orders OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle sorts by creation time descending with the id as tie breaker and
// clamps the page index to [0, pageCount-1]. An empty listing has one
// empty page.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}

	orders, err := h.orders.ListByStatus(ctx, query.Filter().Statuses()...)
	if err != nil {
		return OrderPage{}, err
	}
	slices.SortStableFunc(orders, newestFirst)

	total := len(orders)
	pageCount := max(1, (total+PageSize-1)/PageSize)
	page := min(max(query.Page(), 0), pageCount-1)

	start := page * PageSize
	end := min(start+PageSize, total)

	return OrderPage{
		Filter:    query.Filter().String(),
		Orders:    toSummaries(orders[start:end]),
		Page:      page,
		PageCount: pageCount,
		Total:     total,
	}, nil
}

func newestFirst(a, b *order.Order) int {
	if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
		return c
	}
	return cmp.Compare(b.ID(), a.ID())
}
