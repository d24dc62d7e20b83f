package order

import (
	"strconv"
	"time"
)

// TransitionEvent is recorded by the aggregate for every completed status
// change. A creation event has From == Unknown and To == New or Spam.
//
// ClientID and ClientName travel with the event so subscribers can notify
// the owner without reading the order back.
type TransitionEvent struct {
	OrderID    int64
	From       Status
	To         Status
	Actor      Actor
	ClientID   int64
	ClientName string
	OccurredAt time.Time
}

// IsCreation reports whether the event marks a newly persisted order.
func (e TransitionEvent) IsCreation() bool {
	return e.From == Unknown
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
