package pricing

import (
	"errors"
	"fmt"
	"math"

	"fixpoint/models"
)

var (
	ErrNoServices           = errors.New("at least one repair service must be selected")
	ErrServiceNotApplicable = errors.New("service does not apply to the device category")
)

// Options carries the tunable pricing rates. Defaults mirror the shop's
// standard terms.
type Options struct {
	TaxRate              float64 // e.g. 0.20
	MultiServiceDiscount float64 // e.g. 0.10, applied when 2+ services selected
}

// DefaultOptions returns the standard rates.
func DefaultOptions() Options {
	return Options{TaxRate: 0.20, MultiServiceDiscount: 0.10}
}

// Round2 rounds a monetary value to 2 decimal places, half-up on the cent.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func difficultyMultiplier(d models.RepairDifficulty) float64 {
	switch d {
	case models.DifficultyExpert:
		return 1.30
	case models.DifficultyHard:
		return 1.20
	default:
		return 1.00
	}
}

func availabilityMultiplier(p models.PartAvailability) float64 {
	if p == models.PartsLow {
		return 1.15
	}
	return 1.00
}

// CalculateBase produces the deterministic price estimate for a device and a
// non-empty set of compatible services.
//
// Per service: basePrice × difficulty multiplier × part-availability
// multiplier, rounded to the cent. The multi-service discount applies to the
// summed subtotal after the per-service multipliers and before tax; tax is a
// flat rate on the discounted subtotal.
func CalculateBase(device models.Device, services []models.RepairService, opts Options) (*models.PricingSnapshot, error) {
	if len(services) == 0 {
		return nil, ErrNoServices
	}

	diffMult := difficultyMultiplier(device.Difficulty)
	partMult := availabilityMultiplier(device.PartAvailability)

	lines := make([]models.PriceLine, 0, len(services))
	subtotal := 0.0
	totalTime := 0
	for _, svc := range services {
		if !svc.AppliesTo(device.Category) {
			return nil, fmt.Errorf("%w: service %s, device %s", ErrServiceNotApplicable, svc.ID, device.ID)
		}
		adjusted := Round2(svc.BasePrice * diffMult * partMult)
		lines = append(lines, models.PriceLine{
			ServiceID:        svc.ID,
			ServiceName:      svc.Name,
			BasePrice:        svc.BasePrice,
			AdjustedPrice:    adjusted,
			EstimatedTimeMin: svc.EstimatedTimeMin,
		})
		subtotal += adjusted
		totalTime += svc.EstimatedTimeMin
	}
	subtotal = Round2(subtotal)

	if len(services) > 1 {
		subtotal = Round2(subtotal * (1 - opts.MultiServiceDiscount))
	}

	tax := subtotal * opts.TaxRate
	total := Round2(subtotal + tax)

	return &models.PricingSnapshot{
		Subtotal:         subtotal,
		Tax:              Round2(tax),
		Total:            total,
		Lines:            lines,
		EstimatedTimeMin: totalTime,
	}, nil
}
