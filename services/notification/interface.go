package notification

import (
	"context"

	"fixpoint/models"

	"go.uber.org/zap"
)

// Service defines methods for sending booking confirmations. Delivery
// transport (email/SMS) lives behind this interface and outside the booking
// core.
type Service interface {
	SendBookingConfirmation(ctx context.Context, b models.Booking) error
}

// LogNotificationService is the default implementation: it records the
// confirmation intent in the logs. Real deployments swap in an email/SMS
// provider.
type LogNotificationService struct {
	Logger *zap.Logger
}

func (s *LogNotificationService) SendBookingConfirmation(ctx context.Context, b models.Booking) error {
	s.Logger.Info("booking confirmation sent",
		zap.String("bookingId", b.ID),
		zap.String("email", b.Customer.Email),
		zap.String("date", b.Slot.Date),
		zap.String("time", b.Slot.Time),
		zap.Float64("total", b.Pricing.Total),
	)
	return nil
}
