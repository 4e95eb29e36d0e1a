package sessionsRepo

import (
	"errors"
	"time"

	"fixpoint/models"
)

// ErrSessionNotFound is returned when no session exists under the given id.
var ErrSessionNotFound = errors.New("booking session not found")

// Store is the capability interface over booking-session persistence.
// Sessions are single-writer, so implementations only need atomicity at the
// whole-record level. Expired sessions must stay retrievable until the expiry
// sweep has reclaimed their held resources.
type Store interface {
	Create(session *models.BookingSession) error
	Get(id string) (*models.BookingSession, error)
	Update(session *models.BookingSession) error
	Delete(id string) error
	// Transition atomically flips the session from one status to another,
	// returning the stored session and whether this caller applied the flip.
	// A given transition is won by exactly one caller; losers get the current
	// stored state and false.
	Transition(id string, from, to models.SessionStatus) (*models.BookingSession, bool, error)
	// ExpiredBefore returns in-progress sessions whose expiry has passed.
	ExpiredBefore(t time.Time) ([]models.BookingSession, error)
}
