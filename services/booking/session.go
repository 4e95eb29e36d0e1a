package booking

import (
	"context"
	"errors"
	"strings"

	sessionsRepo "fixpoint/database/repository/sessions"
	"fixpoint/models"
	"fixpoint/services/pricing"
	"fixpoint/services/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession creates a new in-progress session with all five steps pending
// and a 24-hour expiry.
func (s *DefaultSessionService) StartSession() (*models.BookingSession, error) {
	now := s.now()
	session := &models.BookingSession{
		SessionID:   uuid.New().String(),
		Steps:       models.NewSteps(),
		CurrentStep: 0,
		Status:      models.SessionInProgress,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(s.SessionTTL),
	}
	if err := s.Sessions.Create(session); err != nil {
		return nil, err
	}
	s.Logger.Info("booking session started", zap.String("sessionId", session.SessionID))
	return session, nil
}

// GetSession returns the session if it exists and has not expired.
func (s *DefaultSessionService) GetSession(sessionID string) (*models.BookingSession, error) {
	return s.loadActive(sessionID)
}

// loadActive fetches a session and enforces the lifecycle guards shared by
// every operation: unknown id, terminal status, and wall-clock expiry. An
// expired session has its slot hold released before the error is returned.
func (s *DefaultSessionService) loadActive(sessionID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, sessionsRepo.ErrSessionNotFound) {
			return nil, NewError(CodeSessionNotFound, "booking session not found")
		}
		return nil, err
	}
	if session.Status != models.SessionInProgress {
		return nil, NewErrorf(CodeSessionClosed, "session is %s", session.Status)
	}
	if session.ExpiredAt(s.now()) {
		s.expire(session.SessionID)
		return nil, NewError(CodeSessionExpired, "booking session has expired")
	}
	return session, nil
}

// expire reclaims one expired session. The request path and the periodic
// sweep both land here, so the in_progress → expired flip is an atomic store
// transition: exactly one caller wins it and releases the slot hold, which
// keeps a hold from ever being released twice. If the release fails the
// winner flips the session back so the next sweep retries; capacity must
// never be lost silently.
func (s *DefaultSessionService) expire(sessionID string) bool {
	session, won, err := s.Sessions.Transition(sessionID, models.SessionInProgress, models.SessionExpired)
	if err != nil {
		if !errors.Is(err, sessionsRepo.ErrSessionNotFound) {
			s.Logger.Error("failed to expire session",
				zap.String("sessionId", sessionID), zap.Error(err))
		}
		return false
	}
	if !won {
		return false
	}
	if session.Slot != nil {
		if err := s.Allocator.Release(session.Slot.Date, session.Slot.Time); err != nil &&
			!errors.Is(err, scheduling.ErrSlotNotFound) {
			s.Logger.Error("failed to release slot for expired session; will retry on sweep",
				zap.String("sessionId", sessionID), zap.Error(err))
			if _, _, err := s.Sessions.Transition(sessionID, models.SessionExpired, models.SessionInProgress); err != nil {
				s.Logger.Error("failed to reopen session for sweep retry",
					zap.String("sessionId", sessionID), zap.Error(err))
			}
			return false
		}
		session.Slot = nil
	}
	session.UpdatedAt = s.now()
	if err := s.Sessions.Update(session); err != nil {
		s.Logger.Error("failed to persist expired session",
			zap.String("sessionId", sessionID), zap.Error(err))
		return false
	}
	return true
}

// ReclaimExpired sweeps in-progress sessions past expiry, releasing their
// slot holds. Returns the number of sessions reclaimed; failures stay
// in-progress and are retried on the next sweep.
func (s *DefaultSessionService) ReclaimExpired() (int, error) {
	stale, err := s.Sessions.ExpiredBefore(s.now())
	if err != nil {
		return 0, err
	}
	reclaimed := 0
	for i := range stale {
		if s.expire(stale[i].SessionID) {
			reclaimed++
		}
	}
	return reclaimed, nil
}

// stepGuard enforces the linear wizard order: a step may be acted on while it
// is the current step or the immediately previous one.
func stepGuard(session *models.BookingSession, idx int) error {
	if idx > session.CurrentStep {
		return NewErrorf(CodeStepOrder, "step %s is not reachable yet", models.StepOrder[idx])
	}
	if idx < session.CurrentStep-1 {
		return NewErrorf(CodeStepOrder, "step %s can no longer be changed", models.StepOrder[idx])
	}
	return nil
}

func markStep(session *models.BookingSession, idx int, payload map[string]any) {
	session.Steps[idx].Completed = true
	session.Steps[idx].Valid = true
	session.Steps[idx].Payload = payload
	if session.CurrentStep < idx+1 {
		session.CurrentStep = idx + 1
	}
}

// SelectDevice records the device choice and advances to service selection.
// Re-selecting a device while still on the first two steps resets any
// dependent service selection and pricing.
func (s *DefaultSessionService) SelectDevice(sessionID, deviceID string) (*models.BookingSession, error) {
	session, err := s.loadActive(sessionID)
	if err != nil {
		return nil, err
	}
	idx := models.StepIndex(models.StepDeviceSelection)
	if err := stepGuard(session, idx); err != nil {
		return nil, err
	}

	device, err := s.Catalog.GetDevice(deviceID)
	if err != nil {
		return nil, NewErrorf(CodeDeviceNotFound, "unknown device %q", deviceID)
	}
	if !device.Active {
		return nil, NewErrorf(CodeDeviceNotFound, "device %q is not currently serviced", deviceID)
	}

	if session.DeviceID != "" && session.DeviceID != deviceID {
		// Downstream selections depend on the device category.
		session.ServiceIDs = nil
		session.Pricing = nil
		svcIdx := models.StepIndex(models.StepServiceSelection)
		session.Steps[svcIdx] = models.BookingStep{Kind: models.StepServiceSelection}
		session.CurrentStep = idx + 1
	}

	session.DeviceID = deviceID
	markStep(session, idx, map[string]any{"deviceId": deviceID})
	session.UpdatedAt = s.now()
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectServices validates the selection against the catalog and the
// session's device, recomputes the pricing snapshot and advances to the
// appointment step.
func (s *DefaultSessionService) SelectServices(sessionID string, serviceIDs []string) (*models.BookingSession, error) {
	session, err := s.loadActive(sessionID)
	if err != nil {
		return nil, err
	}
	idx := models.StepIndex(models.StepServiceSelection)
	if err := stepGuard(session, idx); err != nil {
		return nil, err
	}
	if len(serviceIDs) == 0 {
		return nil, NewError(CodeInvalidServices, "at least one repair service must be selected")
	}

	device, err := s.Catalog.GetDevice(session.DeviceID)
	if err != nil {
		return nil, NewError(CodeDeviceNotFound, "session device no longer in catalog")
	}

	services := make([]models.RepairService, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc, err := s.Catalog.GetService(id)
		if err != nil {
			return nil, NewErrorf(CodeServiceNotFound, "unknown repair service %q", id)
		}
		if !svc.Active {
			return nil, NewErrorf(CodeServiceNotFound, "repair service %q is not currently offered", id)
		}
		if !svc.AppliesTo(device.Category) {
			return nil, NewErrorf(CodeInvalidServices,
				"service %q does not apply to %s devices", id, device.Category)
		}
		services = append(services, *svc)
	}

	snapshot, err := pricing.CalculateBase(*device, services, s.Pricing)
	if err != nil {
		return nil, NewError(CodeInvalidServices, err.Error())
	}

	session.ServiceIDs = append([]string(nil), serviceIDs...)
	session.Pricing = snapshot
	markStep(session, idx, map[string]any{"serviceIds": serviceIDs})
	session.UpdatedAt = s.now()
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

// BookAppointment reserves the requested slot through the allocator. On
// SlotUnavailable the session is left unchanged; the caller retries with
// another slot. Rebooking releases the previous hold only after the new
// reservation succeeded.
func (s *DefaultSessionService) BookAppointment(sessionID, date, timeOfDay string) (*models.BookingSession, error) {
	session, err := s.loadActive(sessionID)
	if err != nil {
		return nil, err
	}
	idx := models.StepIndex(models.StepAppointment)
	if err := stepGuard(session, idx); err != nil {
		return nil, err
	}

	if prev := session.Slot; prev != nil && prev.Date == date && prev.Time == timeOfDay {
		// Already holding this slot; rebooking it is a no-op.
		return session, nil
	}

	slot, err := s.Allocator.Reserve(date, timeOfDay)
	if err != nil {
		if errors.Is(err, scheduling.ErrSlotUnavailable) {
			return nil, NewErrorf(CodeSlotUnavailable, "slot %s %s is not available", date, timeOfDay)
		}
		return nil, err
	}

	if prev := session.Slot; prev != nil {
		if err := s.Allocator.Release(prev.Date, prev.Time); err != nil {
			s.Logger.Error("failed to release previous slot hold",
				zap.String("sessionId", session.SessionID), zap.Error(err))
		}
	}

	ref := slot.Ref()
	session.Slot = &ref
	markStep(session, idx, map[string]any{"date": date, "time": timeOfDay})
	session.UpdatedAt = s.now()
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddCustomerInfo validates and stores the contact record, advancing to
// confirmation. Invalid input never persists a mutated session.
func (s *DefaultSessionService) AddCustomerInfo(sessionID string, info models.CustomerInfo) (*models.BookingSession, error) {
	session, err := s.loadActive(sessionID)
	if err != nil {
		return nil, err
	}
	idx := models.StepIndex(models.StepCustomerInfo)
	if err := stepGuard(session, idx); err != nil {
		return nil, err
	}
	if err := validateCustomer(info); err != nil {
		return nil, err
	}

	session.Customer = &info
	markStep(session, idx, map[string]any{"email": info.Email})
	session.UpdatedAt = s.now()
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

// CompleteBooking is the terminal transition. It succeeds only when the first
// four steps are all completed and valid; it then assigns the booking id,
// closes the confirmation step and emits the booking downstream.
func (s *DefaultSessionService) CompleteBooking(sessionID string) (*models.Booking, *models.BookingSession, error) {
	session, err := s.loadActive(sessionID)
	if err != nil {
		return nil, nil, err
	}

	confIdx := models.StepIndex(models.StepConfirmation)
	for _, st := range session.Steps[:confIdx] {
		if !st.Completed || !st.Valid {
			return nil, nil, NewErrorf(CodeStepsIncomplete, "step %s is not complete", st.Kind)
		}
	}

	now := s.now()
	bookingID := uuid.New().String()
	session.BookingID = bookingID
	markStep(session, confIdx, map[string]any{"bookingId": bookingID})
	session.Status = models.SessionCompleted
	session.UpdatedAt = now
	if err := s.Sessions.Update(session); err != nil {
		return nil, nil, err
	}

	record := models.Booking{
		ID:         bookingID,
		SessionID:  session.SessionID,
		DeviceID:   session.DeviceID,
		ServiceIDs: session.ServiceIDs,
		Slot:       *session.Slot,
		Customer:   *session.Customer,
		Pricing:    *session.Pricing,
		CreatedAt:  now,
	}
	s.Logger.Info("booking completed",
		zap.String("bookingId", bookingID), zap.String("sessionId", session.SessionID))

	if s.Dispatch != nil {
		if err := s.Dispatch.BookingCompleted(context.Background(), record); err != nil {
			// Downstream delivery is fire-and-forget; the booking stands.
			s.Logger.Error("failed to dispatch completed booking",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
	return &record, session, nil
}

// CancelSession releases any held slot and marks the session cancelled.
// Equivalent to letting expiry reclaim it, just immediate. The cancel is
// gated by the same atomic status flip as expiry, so a concurrent sweep and a
// cancel never release the same hold twice.
func (s *DefaultSessionService) CancelSession(sessionID string) error {
	if _, err := s.loadActive(sessionID); err != nil {
		return err
	}
	session, won, err := s.Sessions.Transition(sessionID, models.SessionInProgress, models.SessionCancelled)
	if err != nil {
		return err
	}
	if !won {
		return NewErrorf(CodeSessionClosed, "session is %s", session.Status)
	}
	if session.Slot != nil {
		if err := s.Allocator.Release(session.Slot.Date, session.Slot.Time); err != nil &&
			!errors.Is(err, scheduling.ErrSlotNotFound) {
			if _, _, terr := s.Sessions.Transition(sessionID, models.SessionCancelled, models.SessionInProgress); terr != nil {
				s.Logger.Error("failed to reopen session after release failure",
					zap.String("sessionId", sessionID), zap.Error(terr))
			}
			return err
		}
		session.Slot = nil
	}
	session.UpdatedAt = s.now()
	return s.Sessions.Update(session)
}

var _ SessionService = (*DefaultSessionService)(nil)

// validateCustomer applies the field-level contact rules: name of at least
// two characters, plausible email, phone carrying at least ten digits.
func validateCustomer(info models.CustomerInfo) error {
	if len([]rune(strings.TrimSpace(info.Name))) < 2 {
		return NewError(CodeInvalidCustomer, "name must be at least 2 characters")
	}
	if !emailPattern.MatchString(info.Email) {
		return NewError(CodeInvalidCustomer, "email address is not valid")
	}
	digits := 0
	for _, r := range info.Phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 10 {
		return NewError(CodeInvalidCustomer, "phone number must contain at least 10 digits")
	}
	return nil
}
