package models

// AppointmentSlot represents one bookable calendar unit with finite capacity.
// Slots are generated in bulk for a rolling horizon and are never deleted,
// only exhausted: once CurrentBookings reaches MaxBookings the slot stops
// appearing in availability listings.
type AppointmentSlot struct {
	Date            string `bson:"date" json:"date"` // "2006-01-02"
	Time            string `bson:"time" json:"time"` // "15:04"
	DurationMin     int    `bson:"durationMin" json:"durationMin"`
	MaxBookings     int    `bson:"maxBookings" json:"maxBookings"`
	CurrentBookings int    `bson:"currentBookings" json:"currentBookings"`
}

// Available reports whether the slot can still take a reservation.
func (s AppointmentSlot) Available() bool {
	return s.CurrentBookings < s.MaxBookings
}

// SlotRef identifies a slot by its calendar coordinates.
type SlotRef struct {
	Date string `bson:"date" json:"date"`
	Time string `bson:"time" json:"time"`
}

// Key returns the canonical store key for a slot coordinate pair.
func (r SlotRef) Key() string {
	return r.Date + "T" + r.Time
}

// Ref returns the slot's calendar coordinates.
func (s AppointmentSlot) Ref() SlotRef {
	return SlotRef{Date: s.Date, Time: s.Time}
}
