package order

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	new ──> accepted ──> in_progress ──> completed ──> issued
//	 │          │             │
//	 └──────────┴─────────────┴──> cancelled
//
// spam is assigned at creation by the spam classifier and has no edges.
// issued, cancelled and spam are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values and marks the
	// source side of a creation event.
	Unknown Status = iota

	// New is the status of a freshly confirmed order waiting for the workshop.
	New

	// Accepted means the workshop took the order and agreed a ready date.
	Accepted

	// InProgress means a master is working on the item.
	InProgress

	// Completed means the work is done and the item waits for pick-up.
	Completed

	// Issued means the item was handed back to the client.
	Issued

	// Cancelled is the terminal status of an abandoned order.
	Cancelled

	// Spam marks a draft rejected by the spam classifier.
	Spam
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		New:        "new",
		Accepted:   "accepted",
		InProgress: "in_progress",
		Completed:  "completed",
		Issued:     "issued",
		Cancelled:  "cancelled",
		Spam:       "spam",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:        "new",
		Accepted:   "accepted",
		InProgress: "in_progress",
		Completed:  "completed",
		Issued:     "issued",
		Cancelled:  "cancelled",
		Spam:       "spam",
	}
}

// getTransitions returns the outgoing edges of every status that has any.
// Statuses missing from the map are terminal.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no edges
	return map[Status][]Status{
		New:        {Accepted, Cancelled},
		Accepted:   {InProgress, Cancelled},
		InProgress: {Completed, Cancelled},
		Completed:  {Issued},
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{New, Accepted, InProgress, Completed, Issued, Cancelled, Spam}
}

// ParseStatus maps a persisted or callback identifier back to a Status.
//
// Returns:
//   - the matching Status for "new", "accepted", "in_progress", "completed",
//     "issued", "cancelled" or "spam"
//   - ValueIsInvalidError for anything else, including "unknown"
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted identifier of the status.
// Invalid values render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no edge leaves the status.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(getTransitions()[s]) == 0
}

// AllowedTargets returns the statuses reachable in one step.
func (s Status) AllowedTargets() []Status {
	targets := getTransitions()[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionTo reports whether target is a direct successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, candidate := range getTransitions()[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// TransitionTo validates a single step of the lifecycle.
//
// Returns:
//   - (target, nil) when the edge s -> target exists
//   - (s, ValueIsInvalidError) when target is not a valid status
//   - (s, ConflictError) when the edge does not exist
//
// Example:
//
//	next, err := order.New.TransitionTo(order.Issued)
//	// errors.Is(err, errs.ErrConflict) == true, next == order.New
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return s, err
	}
	if !s.CanTransitionTo(target) {
		return s, errs.NewConflictError("status", s.String(), s.String(), target.String())
	}
	return target, nil
}
