package booking

import (
	"context"
	"time"

	sessionsRepo "fixpoint/database/repository/sessions"
	"fixpoint/models"
	"fixpoint/services/catalog"
	"fixpoint/services/pricing"
	"fixpoint/services/scheduling"

	"go.uber.org/zap"
)

// SessionService defines the interface for driving a stateful booking session
// through the repair wizard.
type SessionService interface {
	StartSession() (*models.BookingSession, error)
	GetSession(sessionID string) (*models.BookingSession, error)
	SelectDevice(sessionID, deviceID string) (*models.BookingSession, error)
	SelectServices(sessionID string, serviceIDs []string) (*models.BookingSession, error)
	BookAppointment(sessionID, date, timeOfDay string) (*models.BookingSession, error)
	AddCustomerInfo(sessionID string, info models.CustomerInfo) (*models.BookingSession, error)
	ApplyPromoCode(sessionID, code string) (*models.BookingSession, error)
	CompleteBooking(sessionID string) (*models.Booking, *models.BookingSession, error)
	CancelSession(sessionID string) error
	ReclaimExpired() (int, error)
}

// Dispatcher hands a completed booking to downstream collaborators
// (notification, operational repair queue). Fire-and-forget from the engine's
// perspective; delivery retries live behind the implementation.
type Dispatcher interface {
	BookingCompleted(ctx context.Context, b models.Booking) error
}

// PaymentProcessor captures payment for a completed booking. Consumed by
// downstream collaborators only; the engine never invokes it.
type PaymentProcessor interface {
	Capture(ctx context.Context, bookingID string, amount float64, currency string) error
}

// RepairQueue receives completed bookings for technician assignment.
type RepairQueue interface {
	Enqueue(ctx context.Context, b models.Booking) error
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Catalog    catalog.Service
	Allocator  scheduling.Allocator
	Sessions   sessionsRepo.Store
	Dispatch   Dispatcher // optional
	Promos     []models.PromoCode
	Pricing    pricing.Options
	SessionTTL time.Duration
	Logger     *zap.Logger

	now func() time.Time
}

// NewSessionService wires the booking engine with the standard promo table
// and a real clock.
func NewSessionService(
	cat catalog.Service,
	alloc scheduling.Allocator,
	sessions sessionsRepo.Store,
	dispatch Dispatcher,
	logger *zap.Logger,
) *DefaultSessionService {
	return &DefaultSessionService{
		Catalog:    cat,
		Allocator:  alloc,
		Sessions:   sessions,
		Dispatch:   dispatch,
		Promos:     DefaultPromoTable(),
		Pricing:    pricing.DefaultOptions(),
		SessionTTL: 24 * time.Hour,
		Logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *DefaultSessionService) WithClock(now func() time.Time) *DefaultSessionService {
	s.now = now
	return s
}
