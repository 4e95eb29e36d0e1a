package booking

import "fmt"

// Stable machine-readable error codes surfaced through the API envelope.
const (
	CodeDeviceNotFound  = "DEVICE_NOT_FOUND"
	CodeServiceNotFound = "SERVICE_NOT_FOUND"
	CodeInvalidServices = "INVALID_SERVICES"
	CodeSlotUnavailable = "SLOT_UNAVAILABLE"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeSessionExpired  = "SESSION_EXPIRED"
	CodeSessionClosed   = "SESSION_CLOSED"
	CodeStepsIncomplete = "STEPS_INCOMPLETE"
	CodeStepOrder       = "STEP_ORDER"
	CodeInvalidCustomer = "INVALID_CUSTOMER"
	CodePromoInvalid    = "PROMO_INVALID"
	CodePromoMinOrder   = "PROMO_MIN_ORDER"
	CodePricingRequired = "PRICING_REQUIRED"
	CodeInvalidInput    = "INVALID_INPUT"
)

// Error is a typed booking failure carrying a stable code. Every failure in
// the engine is scoped to a single request and returned, never panicked.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a typed booking error.
func NewError(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// NewErrorf builds a typed booking error with a formatted message.
func NewErrorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the stable code from err, or INVALID_INPUT when err is not
// a booking error.
func CodeOf(err error) string {
	if be, ok := err.(*Error); ok {
		return be.Code
	}
	return CodeInvalidInput
}
