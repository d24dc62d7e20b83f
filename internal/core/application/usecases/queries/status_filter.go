package queries

import (
	"workshop/internal/core/domain/model/order"
)

// FilterAll is the identifier of the unfiltered listing.
const FilterAll = "all"

// StatusFilter selects orders by status. The zero value selects all orders.
type StatusFilter struct {
	status order.Status
}

func AllStatuses() StatusFilter {
	return StatusFilter{}
}

func OnlyStatus(s order.Status) StatusFilter {
	return StatusFilter{status: s}
}

// ParseStatusFilter maps a fixed identifier to a filter: "all" or one of the
// persisted status identifiers. Anything else is rejected.
func ParseStatusFilter(id string) (StatusFilter, error) {
	if id == FilterAll || id == "" {
		return AllStatuses(), nil
	}
	s, err := order.ParseStatus(id)
	if err != nil {
		return StatusFilter{}, err
	}
	return OnlyStatus(s), nil
}

// IsAll reports whether the filter selects every status.
func (f StatusFilter) IsAll() bool {
	return f.status == order.Unknown
}

// Statuses returns the selected statuses, nil for all.
func (f StatusFilter) Statuses() []order.Status {
	if f.IsAll() {
		return nil
	}
	return []order.Status{f.status}
}

// String returns the identifier accepted by ParseStatusFilter.
func (f StatusFilter) String() string {
	if f.IsAll() {
		return FilterAll
	}
	return f.status.String()
}
