package slotsRepo

import (
	"sort"
	"sync"

	"fixpoint/models"
	"fixpoint/services/scheduling"
)

// slotEntry pairs a slot with its own mutex so reserve/release serialize per
// slot without a global lock on the calendar.
type slotEntry struct {
	mu   sync.Mutex
	slot models.AppointmentSlot
}

// MemorySlotStore implements scheduling.Store in process memory. The map is
// only grown by Put; per-slot mutation goes through the entry mutex.
type MemorySlotStore struct {
	mu      sync.RWMutex
	entries map[string]*slotEntry
}

// NewMemorySlotStore returns an empty in-memory slot store.
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{entries: make(map[string]*slotEntry)}
}

// Put inserts slots that are not yet present. Existing slots keep their
// counters, so a horizon refresh never resets live reservations.
func (s *MemorySlotStore) Put(slots []models.AppointmentSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range slots {
		key := slot.Ref().Key()
		if _, exists := s.entries[key]; exists {
			continue
		}
		s.entries[key] = &slotEntry{slot: slot}
	}
	return nil
}

// Get returns a copy of the slot at the given coordinates.
func (s *MemorySlotStore) Get(ref models.SlotRef) (*models.AppointmentSlot, error) {
	s.mu.RLock()
	entry, ok := s.entries[ref.Key()]
	s.mu.RUnlock()
	if !ok {
		return nil, scheduling.ErrSlotNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	slot := entry.slot
	return &slot, nil
}

// List returns slots within the inclusive date range, sorted by (date, time).
func (s *MemorySlotStore) List(from, to string) ([]models.AppointmentSlot, error) {
	s.mu.RLock()
	out := make([]models.AppointmentSlot, 0, len(s.entries))
	for _, entry := range s.entries {
		entry.mu.Lock()
		slot := entry.slot
		entry.mu.Unlock()
		if slot.Date >= from && slot.Date <= to {
			out = append(out, slot)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

// Reserve checks capacity and increments the counter under the slot's mutex,
// so two concurrent claims on the last unit resolve to one winner.
func (s *MemorySlotStore) Reserve(ref models.SlotRef) (*models.AppointmentSlot, error) {
	s.mu.RLock()
	entry, ok := s.entries[ref.Key()]
	s.mu.RUnlock()
	if !ok {
		return nil, scheduling.ErrSlotUnavailable
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.slot.CurrentBookings >= entry.slot.MaxBookings {
		return nil, scheduling.ErrSlotUnavailable
	}
	entry.slot.CurrentBookings++
	slot := entry.slot
	return &slot, nil
}

// Release decrements the counter, flooring at zero.
func (s *MemorySlotStore) Release(ref models.SlotRef) error {
	s.mu.RLock()
	entry, ok := s.entries[ref.Key()]
	s.mu.RUnlock()
	if !ok {
		return scheduling.ErrSlotNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.slot.CurrentBookings > 0 {
		entry.slot.CurrentBookings--
	}
	return nil
}
