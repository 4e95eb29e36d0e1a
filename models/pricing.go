package models

// PriceLine is the per-service breakdown entry of a pricing snapshot.
type PriceLine struct {
	ServiceID        string  `json:"serviceId"`
	ServiceName      string  `json:"serviceName"`
	BasePrice        float64 `json:"basePrice"`
	AdjustedPrice    float64 `json:"adjustedPrice"`
	EstimatedTimeMin int     `json:"estimatedTimeMin"`
}

// PricingSnapshot captures the full price estimate for a session's current
// service selection. It is owned by the session that produced it and is
// recomputed, never mutated, when the selection changes.
type PricingSnapshot struct {
	Subtotal         float64     `json:"subtotal"`
	Tax              float64     `json:"tax"`
	Total            float64     `json:"total"`
	Discount         float64     `json:"discount,omitempty"`
	PromoCode        string      `json:"promoCode,omitempty"`
	Lines            []PriceLine `json:"lines"`
	EstimatedTimeMin int         `json:"estimatedTimeMin"`
}

// AdjustmentType marks a dynamic pricing adjustment as a discount or surcharge.
type AdjustmentType string

const (
	AdjustmentDiscount  AdjustmentType = "discount"
	AdjustmentSurcharge AdjustmentType = "surcharge"
)

// PriceAdjustment is one named, signed percentage modifier derived from live
// queue conditions.
type PriceAdjustment struct {
	Factor      string         `json:"factor"`
	Description string         `json:"description"`
	Percentage  float64        `json:"percentage"` // signed, e.g. -0.10 or 0.15
	Type        AdjustmentType `json:"type"`
	Reason      string         `json:"reason"`
}

// DynamicQuote is the queue-aware pricing result: base price, the ordered
// adjustments considered, the clamped net adjustment and the final price.
type DynamicQuote struct {
	BasePrice     float64           `json:"basePrice"`
	Adjustments   []PriceAdjustment `json:"adjustments"`
	NetAdjustment float64           `json:"netAdjustment"` // signed fraction of base after clamping
	FinalPrice    float64           `json:"finalPrice"`
	Confidence    float64           `json:"confidence"` // 0.5 .. 1.0
}

// QueueStatus is a read-only snapshot of live workshop conditions, passed
// explicitly into dynamic pricing so the calculator stays pure.
type QueueStatus struct {
	CapacityUsed     int     `json:"capacityUsed"`
	CapacityTotal    int     `json:"capacityTotal"`
	PeakHours        bool    `json:"peakHours"`
	AvgWaitHours     float64 `json:"avgWaitHours"`
	PriorOrders      int     `json:"priorOrders"`
	TechniciansAvail int     `json:"techniciansAvail"`
	TechniciansTotal int     `json:"techniciansTotal"`
	CriticalPartsOut bool    `json:"criticalPartsOut"`
}

// Utilization returns the queue capacity in use as a 0..1 fraction.
func (q QueueStatus) Utilization() float64 {
	if q.CapacityTotal <= 0 {
		return 0
	}
	return float64(q.CapacityUsed) / float64(q.CapacityTotal)
}
