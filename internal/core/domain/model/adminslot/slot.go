// Package adminslot models the single free-text input an administrator is
// currently expected to type.
//
// At most one slot is pending per administrator. Requesting a new input while
// one is pending cancels the old one and replaces it; the caller receives the
// displaced slot so it can tell the administrator what was dropped.
package adminslot

import "fmt"

// Kind tags the pending input.
type Kind int

const (
	KindNone Kind = iota
	KindReadyDate
	KindMasterComment
	KindBroadcastText
	KindSearchQuery
)

func (k Kind) String() string {
	switch k {
	case KindReadyDate:
		return "ready_date"
	case KindMasterComment:
		return "master_comment"
	case KindBroadcastText:
		return "broadcast_text"
	case KindSearchQuery:
		return "search_query"
	default:
		return "none"
	}
}

// SearchBy selects how a search query is interpreted.
type SearchBy int

const (
	SearchByID SearchBy = iota + 1
	SearchByName
)

func (b SearchBy) String() string {
	switch b {
	case SearchByID:
		return "id"
	case SearchByName:
		return "name"
	default:
		return "unknown"
	}
}

// Slot is a tagged variant. The zero value is the empty slot.
type Slot struct {
	kind     Kind
	orderID  int64
	searchBy SearchBy
}

func None() Slot {
	return Slot{}
}

func AwaitingReadyDate(orderID int64) Slot {
	return Slot{kind: KindReadyDate, orderID: orderID}
}

func AwaitingMasterComment(orderID int64) Slot {
	return Slot{kind: KindMasterComment, orderID: orderID}
}

func AwaitingBroadcastText() Slot {
	return Slot{kind: KindBroadcastText}
}

func AwaitingSearchQuery(by SearchBy) Slot {
	return Slot{kind: KindSearchQuery, searchBy: by}
}

func (s Slot) Kind() Kind {
	return s.kind
}

// OrderID is set for the ready date and master comment variants.
func (s Slot) OrderID() int64 {
	return s.orderID
}

// SearchBy is set for the search query variant.
func (s Slot) SearchBy() SearchBy {
	return s.searchBy
}

func (s Slot) IsEmpty() bool {
	return s.kind == KindNone
}

// Awaits reports whether the slot waits for kind on orderID. Use an orderID
// of zero for variants that carry no order.
func (s Slot) Awaits(kind Kind, orderID int64) bool {
	return s.kind == kind && s.orderID == orderID
}

func (s Slot) String() string {
	switch s.kind {
	case KindReadyDate, KindMasterComment:
		return fmt.Sprintf("%s(#%d)", s.kind, s.orderID)
	case KindSearchQuery:
		return fmt.Sprintf("%s(%s)", s.kind, s.searchBy)
	default:
		return s.kind.String()
	}
}
