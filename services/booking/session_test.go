package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	sessionsRepo "fixpoint/database/repository/sessions"
	slotsRepo "fixpoint/database/repository/slots"
	"fixpoint/models"
	"fixpoint/services/catalog"
	"fixpoint/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock is a settable clock shared by the engine and the session service.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// captureDispatcher records completed bookings instead of enqueueing them.
type captureDispatcher struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (d *captureDispatcher) BookingCompleted(_ context.Context, b models.Booking) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bookings = append(d.bookings, b)
	return nil
}

type testEnv struct {
	svc      *DefaultSessionService
	clock    *fakeClock
	slots    *slotsRepo.MemorySlotStore
	sessions *sessionsRepo.MemorySessionStore
	dispatch *captureDispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}

	slotStore := slotsRepo.NewMemorySlotStore()
	cfg := scheduling.DefaultConfig()
	cfg.HorizonDays = 7
	engine := scheduling.NewEngine(slotStore, cfg, zap.NewNop()).WithClock(clock.Now)
	require.NoError(t, engine.GenerateHorizon())

	sessionStore := sessionsRepo.NewMemorySessionStore()
	dispatch := &captureDispatcher{}
	svc := NewSessionService(catalog.NewDefault(), engine, sessionStore, dispatch, zap.NewNop()).
		WithClock(clock.Now)

	return &testEnv{svc: svc, clock: clock, slots: slotStore, sessions: sessionStore, dispatch: dispatch}
}

func (e *testEnv) slotBookings(t *testing.T, date, timeOfDay string) int {
	t.Helper()
	slot, err := e.slots.Get(models.SlotRef{Date: date, Time: timeOfDay})
	require.NoError(t, err)
	return slot.CurrentBookings
}

// walk drives a fresh session through the first n wizard steps.
func (e *testEnv) walk(t *testing.T, n int) *models.BookingSession {
	t.Helper()
	session, err := e.svc.StartSession()
	require.NoError(t, err)
	steps := []func() error{
		func() error { _, err := e.svc.SelectDevice(session.SessionID, "iphone-13"); return err },
		func() error {
			_, err := e.svc.SelectServices(session.SessionID, []string{"screen-replacement"})
			return err
		},
		func() error { _, err := e.svc.BookAppointment(session.SessionID, "2026-03-03", "10:00"); return err },
		func() error {
			_, err := e.svc.AddCustomerInfo(session.SessionID, models.CustomerInfo{
				Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+44 7700 900123",
			})
			return err
		},
	}
	for i := 0; i < n; i++ {
		require.NoError(t, steps[i]())
	}
	return session
}

func TestStartSession(t *testing.T) {
	env := newTestEnv(t)
	session, err := env.svc.StartSession()
	require.NoError(t, err)

	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, models.SessionInProgress, session.Status)
	assert.Equal(t, 0, session.CurrentStep)
	require.Len(t, session.Steps, len(models.StepOrder))
	for _, st := range session.Steps {
		assert.False(t, st.Completed)
		assert.False(t, st.Valid)
	}
	assert.Equal(t, session.CreatedAt.Add(24*time.Hour), session.ExpiresAt)
}

func TestHappyPathCompleteBooking(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 4)

	record, final, err := env.svc.CompleteBooking(session.SessionID)
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, session.SessionID, record.SessionID)
	assert.Equal(t, "iphone-13", record.DeviceID)
	assert.Equal(t, []string{"screen-replacement"}, record.ServiceIDs)
	assert.InDelta(t, 107.99, record.Pricing.Total, 1e-9)

	assert.Equal(t, models.SessionCompleted, final.Status)
	assert.Equal(t, record.ID, final.BookingID)
	for _, st := range final.Steps {
		assert.True(t, st.Completed)
		assert.True(t, st.Valid)
	}

	// The slot stays reserved for the completed booking.
	assert.Equal(t, 1, env.slotBookings(t, "2026-03-03", "10:00"))

	require.Len(t, env.dispatch.bookings, 1)
	assert.Equal(t, record.ID, env.dispatch.bookings[0].ID)
}

func TestCompleteBookingIncompleteSteps(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 3) // customer info missing

	_, _, err := env.svc.CompleteBooking(session.SessionID)
	require.Error(t, err)
	assert.Equal(t, CodeStepsIncomplete, CodeOf(err))

	// The failed attempt must not mutate the session.
	got, err := env.svc.GetSession(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionInProgress, got.Status)
	assert.Empty(t, got.BookingID)
	assert.False(t, got.Steps[models.StepIndex(models.StepConfirmation)].Completed)
	assert.Empty(t, env.dispatch.bookings)
}

func TestGetSessionUnknown(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.GetSession("no-such-session")
	assert.Equal(t, CodeSessionNotFound, CodeOf(err))
}

func TestCompletedSessionIsClosed(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 4)
	_, _, err := env.svc.CompleteBooking(session.SessionID)
	require.NoError(t, err)

	_, _, err = env.svc.CompleteBooking(session.SessionID)
	assert.Equal(t, CodeSessionClosed, CodeOf(err))

	_, err = env.svc.SelectDevice(session.SessionID, "pixel-8")
	assert.Equal(t, CodeSessionClosed, CodeOf(err))
}

func TestSelectDeviceValidation(t *testing.T) {
	env := newTestEnv(t)
	session, err := env.svc.StartSession()
	require.NoError(t, err)

	_, err = env.svc.SelectDevice(session.SessionID, "nokia-3310")
	assert.Equal(t, CodeDeviceNotFound, CodeOf(err))

	// Inactive catalog entries are rejected the same way.
	_, err = env.svc.SelectDevice(session.SessionID, "airpods-pro-2")
	assert.Equal(t, CodeDeviceNotFound, CodeOf(err))
}

func TestStepOrderEnforced(t *testing.T) {
	env := newTestEnv(t)
	session, err := env.svc.StartSession()
	require.NoError(t, err)

	// Jumping forward is rejected.
	_, err = env.svc.SelectServices(session.SessionID, []string{"screen-replacement"})
	assert.Equal(t, CodeStepOrder, CodeOf(err))
	_, err = env.svc.BookAppointment(session.SessionID, "2026-03-03", "10:00")
	assert.Equal(t, CodeStepOrder, CodeOf(err))

	// Reaching step three makes step one immutable.
	env2 := newTestEnv(t)
	s2 := env2.walk(t, 3)
	_, err = env2.svc.SelectDevice(s2.SessionID, "pixel-8")
	assert.Equal(t, CodeStepOrder, CodeOf(err))
}

func TestRevisitImmediatelyPreviousStep(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 2)

	// Services is the previous step once appointment is current; reworking the
	// selection is allowed and recomputes pricing.
	got, err := env.svc.SelectServices(session.SessionID, []string{"screen-replacement", "battery-replacement"})
	require.NoError(t, err)
	assert.Equal(t, []string{"screen-replacement", "battery-replacement"}, got.ServiceIDs)
	assert.Greater(t, got.Pricing.Total, 107.99)
}

func TestSelectServicesValidation(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 1)

	_, err := env.svc.SelectServices(session.SessionID, nil)
	assert.Equal(t, CodeInvalidServices, CodeOf(err))

	_, err = env.svc.SelectServices(session.SessionID, []string{"unicorn-polish"})
	assert.Equal(t, CodeServiceNotFound, CodeOf(err))

	// hdmi-port-repair only applies to gaming devices, not to a smartphone.
	_, err = env.svc.SelectServices(session.SessionID, []string{"hdmi-port-repair"})
	assert.Equal(t, CodeInvalidServices, CodeOf(err))

	// A failed selection leaves the session without pricing.
	got, err := env.svc.GetSession(session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got.Pricing)
	assert.Equal(t, 1, got.CurrentStep)
}

func TestBookAppointmentHoldsSlot(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 2)

	got, err := env.svc.BookAppointment(session.SessionID, "2026-03-03", "10:00")
	require.NoError(t, err)
	require.NotNil(t, got.Slot)
	assert.Equal(t, 1, env.slotBookings(t, "2026-03-03", "10:00"))

	// Rebooking the identical slot is a no-op, not a second hold.
	_, err = env.svc.BookAppointment(session.SessionID, "2026-03-03", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 1, env.slotBookings(t, "2026-03-03", "10:00"))
}

func TestBookAppointmentRebookReleasesPrevious(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 3)

	_, err := env.svc.BookAppointment(session.SessionID, "2026-03-04", "11:00")
	require.NoError(t, err)

	assert.Equal(t, 0, env.slotBookings(t, "2026-03-03", "10:00"))
	assert.Equal(t, 1, env.slotBookings(t, "2026-03-04", "11:00"))
}

func TestBookAppointmentUnavailableLeavesSessionUnchanged(t *testing.T) {
	env := newTestEnv(t)

	// Fill the slot from competing sessions.
	for i := 0; i < scheduling.DefaultConfig().Capacity; i++ {
		s := env.walk(t, 2)
		_, err := env.svc.BookAppointment(s.SessionID, "2026-03-03", "09:00")
		require.NoError(t, err)
	}

	session := env.walk(t, 2)
	_, err := env.svc.BookAppointment(session.SessionID, "2026-03-03", "09:00")
	assert.Equal(t, CodeSlotUnavailable, CodeOf(err))

	got, err := env.svc.GetSession(session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got.Slot)
	assert.Equal(t, 2, got.CurrentStep)

	// The caller retries with another slot.
	_, err = env.svc.BookAppointment(session.SessionID, "2026-03-03", "10:00")
	require.NoError(t, err)
}

func TestAddCustomerInfoValidation(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 3)

	tests := []struct {
		name string
		info models.CustomerInfo
	}{
		{"short name", models.CustomerInfo{Name: "A", Email: "a@example.com", Phone: "0770090012345"}},
		{"bad email", models.CustomerInfo{Name: "Ada Lovelace", Email: "not-an-email", Phone: "0770090012345"}},
		{"short phone", models.CustomerInfo{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.AddCustomerInfo(session.SessionID, tt.info)
			assert.Equal(t, CodeInvalidCustomer, CodeOf(err))
		})
	}

	// Invalid attempts never persist a customer record.
	got, err := env.svc.GetSession(session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got.Customer)

	// Phone digits may be separated by formatting characters.
	_, err = env.svc.AddCustomerInfo(session.SessionID, models.CustomerInfo{
		Name: "Ada Lovelace", Email: "ada@example.com", Phone: "(077) 009-001-23",
	})
	require.NoError(t, err)
}

func TestSessionExpiryReleasesSlot(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 3)
	require.Equal(t, 1, env.slotBookings(t, "2026-03-03", "10:00"))

	env.clock.Advance(25 * time.Hour)

	_, err := env.svc.GetSession(session.SessionID)
	assert.Equal(t, CodeSessionExpired, CodeOf(err))
	assert.Equal(t, 0, env.slotBookings(t, "2026-03-03", "10:00"))

	// Once reclaimed the session reads as closed, not expired again.
	_, err = env.svc.GetSession(session.SessionID)
	assert.Equal(t, CodeSessionClosed, CodeOf(err))
}

func TestReclaimExpiredSweep(t *testing.T) {
	env := newTestEnv(t)
	first := env.walk(t, 3)
	second := env.walk(t, 1)

	env.clock.Advance(2 * time.Hour)
	fresh := env.walk(t, 1)

	env.clock.Advance(23 * time.Hour) // first and second are past 24h, fresh is not
	n, err := env.svc.ReclaimExpired()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, 0, env.slotBookings(t, "2026-03-03", "10:00"))
	_, err = env.svc.GetSession(first.SessionID)
	assert.Equal(t, CodeSessionClosed, CodeOf(err))
	_, err = env.svc.GetSession(second.SessionID)
	assert.Equal(t, CodeSessionClosed, CodeOf(err))
	_, err = env.svc.GetSession(fresh.SessionID)
	require.NoError(t, err)

	// A second sweep finds nothing.
	n, err = env.svc.ReclaimExpired()
	require.NoError(t, err)
	assert.Zero(t, n)
}

// snapshotHookStore runs a callback after the sweep has taken its expired
// snapshot, to interleave request-path activity before the reclaim loop runs.
type snapshotHookStore struct {
	sessionsRepo.Store
	afterSnapshot func()
}

func (s *snapshotHookStore) ExpiredBefore(t time.Time) ([]models.BookingSession, error) {
	out, err := s.Store.ExpiredBefore(t)
	if s.afterSnapshot != nil {
		s.afterSnapshot()
	}
	return out, err
}

func TestSweepAndRequestExpiryReleaseOnce(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}

	slotStore := slotsRepo.NewMemorySlotStore()
	cfg := scheduling.DefaultConfig()
	cfg.HorizonDays = 7
	cfg.Capacity = 2
	engine := scheduling.NewEngine(slotStore, cfg, zap.NewNop()).WithClock(clock.Now)
	require.NoError(t, engine.GenerateHorizon())

	hook := &snapshotHookStore{Store: sessionsRepo.NewMemorySessionStore()}
	svc := NewSessionService(catalog.NewDefault(), engine, hook, nil, zap.NewNop()).
		WithClock(clock.Now)

	book := func() *models.BookingSession {
		session, err := svc.StartSession()
		require.NoError(t, err)
		_, err = svc.SelectDevice(session.SessionID, "iphone-13")
		require.NoError(t, err)
		_, err = svc.SelectServices(session.SessionID, []string{"screen-replacement"})
		require.NoError(t, err)
		_, err = svc.BookAppointment(session.SessionID, "2026-03-03", "10:00")
		require.NoError(t, err)
		return session
	}
	holds := func() int {
		slot, err := slotStore.Get(models.SlotRef{Date: "2026-03-03", Time: "10:00"})
		require.NoError(t, err)
		return slot.CurrentBookings
	}

	stale := book()
	clock.Advance(2 * time.Hour)
	live := book()
	require.Equal(t, 2, holds())

	clock.Advance(23 * time.Hour) // stale is past 24h, live is not

	// Between the sweep's snapshot and its reclaim loop, a request expires the
	// stale session and releases its hold. The sweep's stale copy must not
	// release it a second time and steal the live session's unit.
	hook.afterSnapshot = func() {
		_, err := svc.GetSession(stale.SessionID)
		assert.Equal(t, CodeSessionExpired, CodeOf(err))
	}
	n, err := svc.ReclaimExpired()
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, 1, holds())
	_, err = svc.GetSession(live.SessionID)
	require.NoError(t, err)
}

func TestCancelSessionReleasesSlot(t *testing.T) {
	env := newTestEnv(t)
	session := env.walk(t, 3)

	require.NoError(t, env.svc.CancelSession(session.SessionID))
	assert.Equal(t, 0, env.slotBookings(t, "2026-03-03", "10:00"))

	_, err := env.svc.GetSession(session.SessionID)
	assert.Equal(t, CodeSessionClosed, CodeOf(err))
}

func TestValidateCustomerNameWhitespace(t *testing.T) {
	err := validateCustomer(models.CustomerInfo{
		Name: "  A  ", Email: "a@example.com", Phone: "0770090012345",
	})
	assert.Equal(t, CodeInvalidCustomer, CodeOf(err))
}
