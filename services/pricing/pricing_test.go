package pricing

import (
	"testing"

	"fixpoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDevice(difficulty models.RepairDifficulty, parts models.PartAvailability) models.Device {
	return models.Device{
		ID:               "test-device",
		Brand:            "Acme",
		Category:         models.CategorySmartphone,
		Model:            "One",
		Difficulty:       difficulty,
		PartAvailability: parts,
		Active:           true,
	}
}

func testService(id string, price float64, timeMin int) models.RepairService {
	return models.RepairService{
		ID:               id,
		Name:             id,
		BasePrice:        price,
		EstimatedTimeMin: timeMin,
		DeviceCategories: []models.DeviceCategory{models.CategorySmartphone},
		Active:           true,
	}
}

func TestRound2HalfUp(t *testing.T) {
	assert.InDelta(t, 116.99, Round2(116.987), 1e-9)
	assert.InDelta(t, 107.99, Round2(107.988), 1e-9)
	assert.InDelta(t, 1.01, Round2(1.005), 1e-9)
	assert.InDelta(t, 1.00, Round2(1.004), 1e-9)
}

func TestCalculateBaseSingleServiceNoMultipliers(t *testing.T) {
	// iPhone 13 scenario: medium difficulty, high availability, one service.
	device := testDevice(models.DifficultyMedium, models.PartsHigh)
	screen := testService("screen-replacement", 89.99, 45)

	snap, err := CalculateBase(device, []models.RepairService{screen}, DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, 89.99, snap.Subtotal, 1e-9)
	assert.InDelta(t, 18.00, snap.Tax, 1e-9)
	assert.InDelta(t, 107.99, snap.Total, 1e-9)
	assert.Equal(t, 45, snap.EstimatedTimeMin)
	require.Len(t, snap.Lines, 1)
	assert.InDelta(t, 89.99, snap.Lines[0].AdjustedPrice, 1e-9)
}

func TestCalculateBaseExpertMultiService(t *testing.T) {
	// MacBook scenario: expert difficulty (x1.30), medium parts (no extra),
	// two services so the 10% multi-service discount applies before tax.
	device := testDevice(models.DifficultyExpert, models.PartsMedium)
	services := []models.RepairService{
		testService("screen-replacement", 89.99, 45),
		testService("battery-replacement", 59.99, 30),
	}

	snap, err := CalculateBase(device, services, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, snap.Lines, 2)
	assert.InDelta(t, 116.99, snap.Lines[0].AdjustedPrice, 1e-9)
	assert.InDelta(t, 77.99, snap.Lines[1].AdjustedPrice, 1e-9)
	assert.InDelta(t, 175.48, snap.Subtotal, 1e-9)
	assert.InDelta(t, 35.10, snap.Tax, 1e-9)
	assert.InDelta(t, 210.58, snap.Total, 1e-9)
	assert.Equal(t, 75, snap.EstimatedTimeMin)
}

func TestCalculateBaseLowPartsSurcharge(t *testing.T) {
	device := testDevice(models.DifficultyHard, models.PartsLow)
	svc := testService("screen-replacement", 100.00, 60)

	snap, err := CalculateBase(device, []models.RepairService{svc}, DefaultOptions())
	require.NoError(t, err)

	// 100 x 1.20 (hard) x 1.15 (low parts) = 138.00
	assert.InDelta(t, 138.00, snap.Lines[0].AdjustedPrice, 1e-9)
}

func TestCalculateBaseDeterministic(t *testing.T) {
	device := testDevice(models.DifficultyExpert, models.PartsLow)
	services := []models.RepairService{
		testService("a", 89.99, 45),
		testService("b", 59.99, 30),
		testService("c", 129.99, 240),
	}

	first, err := CalculateBase(device, services, DefaultOptions())
	require.NoError(t, err)
	second, err := CalculateBase(device, services, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.Equal(t, first.Tax, second.Tax)
	assert.Equal(t, first.Total, second.Total)
}

func TestCalculateBaseMultiServiceDiscountBound(t *testing.T) {
	device := testDevice(models.DifficultyMedium, models.PartsHigh)
	a := testService("a", 89.99, 45)
	b := testService("b", 59.99, 30)

	single, err := CalculateBase(device, []models.RepairService{a}, DefaultOptions())
	require.NoError(t, err)
	other, err := CalculateBase(device, []models.RepairService{b}, DefaultOptions())
	require.NoError(t, err)
	combined, err := CalculateBase(device, []models.RepairService{a, b}, DefaultOptions())
	require.NoError(t, err)

	// Combined subtotal is the discounted sum of the single-service subtotals.
	assert.LessOrEqual(t, combined.Subtotal, (single.Subtotal+other.Subtotal)*0.9+0.01)
}

func TestCalculateBaseRejectsEmptySelection(t *testing.T) {
	device := testDevice(models.DifficultyMedium, models.PartsHigh)
	_, err := CalculateBase(device, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoServices)
}

func TestCalculateBaseRejectsIncompatibleService(t *testing.T) {
	device := testDevice(models.DifficultyMedium, models.PartsHigh)
	laptopOnly := models.RepairService{
		ID:               "motherboard-repair",
		BasePrice:        149.99,
		DeviceCategories: []models.DeviceCategory{models.CategoryLaptop},
		Active:           true,
	}
	_, err := CalculateBase(device, []models.RepairService{laptopOnly}, DefaultOptions())
	assert.ErrorIs(t, err, ErrServiceNotApplicable)
}
