package models

import "time"

// StepKind names one ordered stage of the booking wizard.
type StepKind string

const (
	StepDeviceSelection  StepKind = "device_selection"
	StepServiceSelection StepKind = "service_selection"
	StepAppointment      StepKind = "appointment"
	StepCustomerInfo     StepKind = "customer_info"
	StepConfirmation     StepKind = "confirmation"
)

// StepOrder is the fixed wizard sequence. Transitions are linear; a step may
// only be redone while it is the current or immediately previous step.
var StepOrder = []StepKind{
	StepDeviceSelection,
	StepServiceSelection,
	StepAppointment,
	StepCustomerInfo,
	StepConfirmation,
}

// BookingStep tracks completion state for one wizard stage. Valid means the
// stage's own field-level validation passed; Completed means the customer
// explicitly advanced past it.
type BookingStep struct {
	Kind      StepKind       `json:"kind"`
	Completed bool           `json:"completed"`
	Valid     bool           `json:"valid"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// SessionStatus is the lifecycle state of a booking session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
	SessionExpired    SessionStatus = "expired"
)

// CustomerInfo is the contact record collected at the customer_info step.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// BookingSession tracks one customer's in-progress booking attempt. It
// references catalog and calendar entities by identifier only; it owns its
// pricing snapshot exclusively.
type BookingSession struct {
	SessionID   string           `json:"sessionId"`
	Steps       []BookingStep    `json:"steps"`
	CurrentStep int              `json:"currentStep"`
	DeviceID    string           `json:"deviceId,omitempty"`
	ServiceIDs  []string         `json:"serviceIds,omitempty"`
	Slot        *SlotRef         `json:"slot,omitempty"`
	Customer    *CustomerInfo    `json:"customer,omitempty"`
	Pricing     *PricingSnapshot `json:"pricing,omitempty"`
	Status      SessionStatus    `json:"status"`
	BookingID   string           `json:"bookingId,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	ExpiresAt   time.Time        `json:"expiresAt"`
}

// NewSteps returns the five wizard steps in order, all pending.
func NewSteps() []BookingStep {
	steps := make([]BookingStep, len(StepOrder))
	for i, kind := range StepOrder {
		steps[i] = BookingStep{Kind: kind}
	}
	return steps
}

// StepIndex returns the position of kind in the wizard order, or -1.
func StepIndex(kind StepKind) int {
	for i, k := range StepOrder {
		if k == kind {
			return i
		}
	}
	return -1
}

// AllStepsDone reports whether every step is both completed and valid.
func (s *BookingSession) AllStepsDone() bool {
	for _, st := range s.Steps {
		if !st.Completed || !st.Valid {
			return false
		}
	}
	return true
}

// ExpiredAt reports whether the session has passed its expiry at time t.
func (s *BookingSession) ExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}
