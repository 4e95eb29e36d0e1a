package scheduling

import (
	"errors"

	"fixpoint/models"
)

var (
	// ErrSlotUnavailable is returned when a reservation cannot be granted:
	// the slot does not exist, or its capacity is exhausted.
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrSlotNotFound is returned by lookups for unknown calendar coordinates.
	ErrSlotNotFound = errors.New("slot not found")
)

// Store is the capability interface over the slot calendar backing. Reserve
// must check capacity and increment the booking counter as one atomic unit;
// implementations serialize reserve/release per slot.
type Store interface {
	// Put inserts the given slots, skipping any coordinate already present.
	Put(slots []models.AppointmentSlot) error
	Get(ref models.SlotRef) (*models.AppointmentSlot, error)
	// List returns slots with from <= date <= to, sorted by (date, time).
	List(from, to string) ([]models.AppointmentSlot, error)
	Reserve(ref models.SlotRef) (*models.AppointmentSlot, error)
	Release(ref models.SlotRef) error
}

// Allocator grants and releases reservations against the finite appointment
// calendar.
type Allocator interface {
	ListAvailable(date string) ([]models.AppointmentSlot, error)
	Reserve(date, timeOfDay string) (*models.AppointmentSlot, error)
	Release(date, timeOfDay string) error
}
