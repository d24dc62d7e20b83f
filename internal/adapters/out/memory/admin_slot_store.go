package memory

import (
	"sync"

	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/core/ports"
)

var _ ports.AdminSlotStore = (*AdminSlotStore)(nil)

type AdminSlotStore struct {
	mu    sync.Mutex
	slots map[int64]adminslot.Slot
}

func NewAdminSlotStore() *AdminSlotStore {
	return &AdminSlotStore{slots: make(map[int64]adminslot.Slot)}
}

func (s *AdminSlotStore) Current(adminID int64) adminslot.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[adminID]
}

func (s *AdminSlotStore) Replace(adminID int64, slot adminslot.Slot) adminslot.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	displaced := s.slots[adminID]
	s.put(adminID, slot)
	return displaced
}

func (s *AdminSlotStore) CompareAndSwap(adminID int64, expected, next adminslot.Slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slots[adminID] != expected {
		return false
	}
	s.put(adminID, next)
	return true
}

func (s *AdminSlotStore) put(adminID int64, slot adminslot.Slot) {
	if slot.IsEmpty() {
		delete(s.slots, adminID)
		return
	}
	s.slots[adminID] = slot
}
