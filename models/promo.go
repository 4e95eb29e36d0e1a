package models

// PromoType distinguishes percentage codes from fixed-amount codes.
type PromoType string

const (
	PromoPercentage PromoType = "percentage"
	PromoFixed      PromoType = "fixed"
)

// PromoCode is one entry of the read-only promotion rule table.
type PromoCode struct {
	Code     string    `json:"code"`
	Type     PromoType `json:"type"`
	Value    float64   `json:"value"`    // percent (e.g. 10 for 10%) or fixed amount
	MinOrder float64   `json:"minOrder"` // minimum subtotal for the code to apply
}
