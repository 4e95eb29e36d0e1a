package pricing

import "fixpoint/models"

// Dynamic pricing thresholds and rates. Adjustments are ordered; each is a
// signed percentage of the base price, summed and clamped before application.
const (
	highUtilizationThreshold = 0.85
	lowUtilizationThreshold  = 0.50
	longWaitThresholdHours   = 8.0
	loyaltyStepRate          = 0.02
	loyaltyCapRate           = 0.15
	minConfidence            = 0.5
)

// DynamicOptions bounds the queue-driven adjustment.
type DynamicOptions struct {
	MaxAdjustment float64 // clamp for the net signed adjustment, e.g. 0.25
}

// DefaultDynamicOptions returns the standard ±25% clamp.
func DefaultDynamicOptions() DynamicOptions {
	return DynamicOptions{MaxAdjustment: 0.25}
}

// CalculateDynamic derives the queue-aware quote for a base price. The queue
// snapshot is passed in explicitly; the function is pure.
func CalculateDynamic(basePrice float64, queue models.QueueStatus, opts DynamicOptions) models.DynamicQuote {
	var adjustments []models.PriceAdjustment
	confidence := 1.0

	util := queue.Utilization()
	switch {
	case util > highUtilizationThreshold:
		adjustments = append(adjustments, models.PriceAdjustment{
			Factor:      "queue_capacity_high",
			Description: "Workshop near capacity",
			Percentage:  0.15,
			Type:        models.AdjustmentSurcharge,
			Reason:      "queue utilization above 85%",
		})
		confidence -= 0.15
	case util < lowUtilizationThreshold:
		adjustments = append(adjustments, models.PriceAdjustment{
			Factor:      "queue_capacity_low",
			Description: "Workshop has spare capacity",
			Percentage:  -0.10,
			Type:        models.AdjustmentDiscount,
			Reason:      "queue utilization below 50%",
		})
	}

	if queue.PeakHours {
		adjustments = append(adjustments, models.PriceAdjustment{
			Factor:      "peak_hours",
			Description: "Peak hours demand",
			Percentage:  0.15,
			Type:        models.AdjustmentSurcharge,
			Reason:      "booking during peak hours",
		})
		confidence -= 0.1
	}

	if queue.AvgWaitHours > longWaitThresholdHours {
		adjustments = append(adjustments, models.PriceAdjustment{
			Factor:      "long_wait",
			Description: "Extended wait compensation",
			Percentage:  -0.08,
			Type:        models.AdjustmentDiscount,
			Reason:      "average wait above 8 hours",
		})
	}

	if queue.PriorOrders > 0 {
		loyalty := loyaltyStepRate * float64(queue.PriorOrders)
		if loyalty > loyaltyCapRate {
			loyalty = loyaltyCapRate
		}
		adjustments = append(adjustments, models.PriceAdjustment{
			Factor:      "loyalty",
			Description: "Returning customer discount",
			Percentage:  -loyalty,
			Type:        models.AdjustmentDiscount,
			Reason:      "prior completed orders",
		})
	}

	if queue.TechniciansTotal > 0 && queue.TechniciansAvail == 0 {
		adjustments = append(adjustments, models.PriceAdjustment{
			Factor:      "technicians_exhausted",
			Description: "All technicians occupied",
			Percentage:  0.12,
			Type:        models.AdjustmentSurcharge,
			Reason:      "no technician currently free",
		})
		confidence -= 0.2
	}

	if queue.CriticalPartsOut {
		adjustments = append(adjustments, models.PriceAdjustment{
			Factor:      "parts_out_of_stock",
			Description: "Critical parts sourcing",
			Percentage:  0.05,
			Type:        models.AdjustmentSurcharge,
			Reason:      "critical parts out of stock",
		})
	}

	net := 0.0
	for _, a := range adjustments {
		net += a.Percentage
	}
	if net > opts.MaxAdjustment {
		net = opts.MaxAdjustment
	}
	if net < -opts.MaxAdjustment {
		net = -opts.MaxAdjustment
	}

	if confidence < minConfidence {
		confidence = minConfidence
	}

	return models.DynamicQuote{
		BasePrice:     basePrice,
		Adjustments:   adjustments,
		NetAdjustment: net,
		FinalPrice:    Round2(basePrice * (1 + net)),
		Confidence:    confidence,
	}
}
