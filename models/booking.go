package models

import "time"

// Booking is the confirmed record emitted when a session completes. It is the
// payload handed to downstream collaborators (payment, notification, repair
// queue); the core does not manage it past emission.
type Booking struct {
	ID         string          `json:"id"`
	SessionID  string          `json:"sessionId"`
	DeviceID   string          `json:"deviceId"`
	ServiceIDs []string        `json:"serviceIds"`
	Slot       SlotRef         `json:"slot"`
	Customer   CustomerInfo    `json:"customer"`
	Pricing    PricingSnapshot `json:"pricing"`
	CreatedAt  time.Time       `json:"createdAt"`
}
