package queries

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

const maxSearchLength = 100

var (
	ErrSearchOrdersQueryIsNotConstructed = errors.New(
		"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
	)
)

// SearchOrdersQuery finds orders by exact id or by a client name fragment.
// A leading "#" is accepted in id searches.
type SearchOrdersQuery struct {
	by      adminslot.SearchBy
	orderID int64
	text    string

	guard guard.ConstructorGuard
}

func NewSearchOrdersQuery(by adminslot.SearchBy, text string) (SearchOrdersQuery, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SearchOrdersQuery{}, errs.NewValueIsRequiredError("query")
	}
	if len(text) > maxSearchLength {
		return SearchOrdersQuery{}, errs.NewValueIsOutOfRangeError("query", len(text), 1, maxSearchLength)
	}

	q := SearchOrdersQuery{by: by, text: text, guard: guard.NewConstructorGuard()}
	switch by {
	case adminslot.SearchByID:
		id, err := strconv.ParseInt(strings.TrimPrefix(text, "#"), 10, 64)
		if err != nil || id <= 0 {
			return SearchOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("query",
				fmt.Errorf("%q is not an order number", text))
		}
		q.orderID = id
	case adminslot.SearchByName:
	default:
		return SearchOrdersQuery{}, errs.NewValueIsInvalidError("searchBy")
	}

	return q, nil
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

func (q SearchOrdersQuery) By() adminslot.SearchBy {
	return q.by
}

func (q SearchOrdersQuery) Text() string {
	return q.text
}

type SearchOrdersQueryHandler struct {
	orders OrderReader
}

func NewSearchOrdersQueryHandler(orders OrderReader) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{orders: orders}
}

// Handle returns an empty result, not an error, when nothing matches.
func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.By() == adminslot.SearchByID {
		o, err := h.orders.Get(ctx, query.orderID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return []OrderSummary{}, nil
		}
		if err != nil {
			return nil, err
		}
		return toSummaries([]*order.Order{o}), nil
	}

	found, err := h.orders.SearchByClientName(ctx, query.Text())
	if err != nil {
		return nil, err
	}
	return toSummaries(found), nil
}
