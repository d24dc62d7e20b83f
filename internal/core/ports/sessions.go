package ports

import (
	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/core/domain/model/intake"
)

// IntakeSessionStore keeps at most one live wizard session per user.
// Saving a session replaces any previous one of the same user.
type IntakeSessionStore interface {
	Load(userID int64) (*intake.Session, bool)
	Save(session *intake.Session)
	Delete(userID int64)
}

// AdminSlotStore keeps at most one pending input per administrator.
type AdminSlotStore interface {
	// Current returns the pending slot, or the empty slot.
	Current(adminID int64) adminslot.Slot

	// Replace stores slot and returns the one it displaced.
	Replace(adminID int64, slot adminslot.Slot) adminslot.Slot

	// CompareAndSwap stores next only if the pending slot equals expected.
	CompareAndSwap(adminID int64, expected, next adminslot.Slot) bool
}
