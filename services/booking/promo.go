package booking

import (
	"strings"

	"fixpoint/models"
	"fixpoint/services/pricing"
)

// DefaultPromoTable returns the fixed promotion rule table. Read-only
// reference data.
func DefaultPromoTable() []models.PromoCode {
	return []models.PromoCode{
		{Code: "WELCOME10", Type: models.PromoPercentage, Value: 10, MinOrder: 0},
		{Code: "REPAIR20", Type: models.PromoPercentage, Value: 20, MinOrder: 150},
		{Code: "FIVER", Type: models.PromoFixed, Value: 5, MinOrder: 25},
		{Code: "STUDENT15", Type: models.PromoPercentage, Value: 15, MinOrder: 50},
	}
}

// ApplyPromoCode validates the code against the rule table and applies it to
// the session's pricing snapshot.
//
// The discount is always re-derived from the undiscounted subtotal+tax, so
// reapplying the same code is idempotent and applying a different code
// replaces the previous discount instead of stacking on it.
func (s *DefaultSessionService) ApplyPromoCode(sessionID, code string) (*models.BookingSession, error) {
	session, err := s.loadActive(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Pricing == nil {
		return nil, NewError(CodePricingRequired, "select services before applying a promo code")
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	var rule *models.PromoCode
	for i := range s.Promos {
		if s.Promos[i].Code == normalized {
			rule = &s.Promos[i]
			break
		}
	}
	if rule == nil {
		return nil, NewErrorf(CodePromoInvalid, "promo code %q is not valid", code)
	}
	if session.Pricing.Subtotal < rule.MinOrder {
		return nil, NewErrorf(CodePromoMinOrder,
			"promo code %s requires a minimum order of %.2f", rule.Code, rule.MinOrder)
	}

	baseTotal := pricing.Round2(session.Pricing.Subtotal + session.Pricing.Tax)
	var discount float64
	switch rule.Type {
	case models.PromoPercentage:
		discount = pricing.Round2(baseTotal * rule.Value / 100)
	case models.PromoFixed:
		discount = pricing.Round2(rule.Value)
	}
	if discount > baseTotal {
		discount = baseTotal
	}

	session.Pricing.Discount = discount
	session.Pricing.PromoCode = rule.Code
	session.Pricing.Total = pricing.Round2(baseTotal - discount)
	session.UpdatedAt = s.now()
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}
