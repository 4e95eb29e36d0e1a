package scheduling

import (
	"fmt"
	"time"

	"fixpoint/models"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Config holds the calendar generation parameters.
type Config struct {
	HorizonDays int // rolling future window of bookable days
	WindowDays  int // default listing window when no date filter is given
	Capacity    int // concurrent bookings per slot
	OpenHour    int // first bookable hour, inclusive
	CloseHour   int // last bookable hour, exclusive
	DurationMin int
}

// DefaultConfig returns the standard 30-day hourly calendar.
func DefaultConfig() Config {
	return Config{
		HorizonDays: 30,
		WindowDays:  7,
		Capacity:    3,
		OpenHour:    9,
		CloseHour:   18,
		DurationMin: 60,
	}
}

// Engine implements Allocator over a Store. The store is the single point of
// truth for the reserve/release mutation; the engine owns horizon generation
// and listing policy.
type Engine struct {
	Store  Store
	Cfg    Config
	Logger *zap.Logger

	now func() time.Time
}

// NewEngine builds an allocator engine. The clock is injectable for tests.
func NewEngine(store Store, cfg Config, logger *zap.Logger) *Engine {
	return &Engine{Store: store, Cfg: cfg, Logger: logger, now: time.Now}
}

// WithClock overrides the engine clock. Test hook.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// GenerateHorizon bulk-creates slots for the rolling horizon starting today.
// Existing slots keep their booking counters; Sundays are closed.
func (e *Engine) GenerateHorizon() error {
	start := e.now()
	var slots []models.AppointmentSlot
	for day := 0; day < e.Cfg.HorizonDays; day++ {
		d := start.AddDate(0, 0, day)
		if d.Weekday() == time.Sunday {
			continue
		}
		for hour := e.Cfg.OpenHour; hour < e.Cfg.CloseHour; hour++ {
			slots = append(slots, models.AppointmentSlot{
				Date:        d.Format(dateLayout),
				Time:        fmt.Sprintf("%02d:00", hour),
				DurationMin: e.Cfg.DurationMin,
				MaxBookings: e.Cfg.Capacity,
			})
		}
	}
	if err := e.Store.Put(slots); err != nil {
		return fmt.Errorf("failed to generate slot horizon: %w", err)
	}
	if e.Logger != nil {
		e.Logger.Info("slot horizon generated",
			zap.Int("days", e.Cfg.HorizonDays), zap.Int("slots", len(slots)))
	}
	return nil
}

// ListAvailable returns slots that can still take a booking, sorted by
// (date, time). With a date filter only that day is listed; otherwise the
// next WindowDays days are.
func (e *Engine) ListAvailable(date string) ([]models.AppointmentSlot, error) {
	var from, to string
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date filter %q: %w", date, err)
		}
		from, to = date, date
	} else {
		today := e.now()
		from = today.Format(dateLayout)
		to = today.AddDate(0, 0, e.Cfg.WindowDays-1).Format(dateLayout)
	}

	slots, err := e.Store.List(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	available := make([]models.AppointmentSlot, 0, len(slots))
	for _, s := range slots {
		if s.Available() {
			available = append(available, s)
		}
	}
	return available, nil
}

// Reserve claims one unit of the slot's capacity, or fails with
// ErrSlotUnavailable when none is left.
func (e *Engine) Reserve(date, timeOfDay string) (*models.AppointmentSlot, error) {
	slot, err := e.Store.Reserve(models.SlotRef{Date: date, Time: timeOfDay})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// Release returns one unit of capacity, flooring the counter at zero. Used
// when a session expires or is cancelled before completion.
func (e *Engine) Release(date, timeOfDay string) error {
	return e.Store.Release(models.SlotRef{Date: date, Time: timeOfDay})
}
