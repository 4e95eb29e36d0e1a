package models

// DeviceCategory classifies the kind of hardware a customer brings in.
type DeviceCategory string

const (
	CategorySmartphone DeviceCategory = "smartphone"
	CategoryTablet     DeviceCategory = "tablet"
	CategoryLaptop     DeviceCategory = "laptop"
	CategoryDesktop    DeviceCategory = "desktop"
	CategoryGaming     DeviceCategory = "gaming"
	CategoryWearable   DeviceCategory = "wearable"
	CategoryAudio      DeviceCategory = "audio"
)

// RepairDifficulty grades how involved a repair on a given device is.
type RepairDifficulty string

const (
	DifficultyEasy   RepairDifficulty = "easy"
	DifficultyMedium RepairDifficulty = "medium"
	DifficultyHard   RepairDifficulty = "hard"
	DifficultyExpert RepairDifficulty = "expert"
)

// PartAvailability reflects how easily spare parts are sourced for a device.
type PartAvailability string

const (
	PartsHigh   PartAvailability = "high"
	PartsMedium PartAvailability = "medium"
	PartsLow    PartAvailability = "low"
)

// ServiceCategory classifies a repair service offering.
type ServiceCategory string

const (
	ServiceScreen       ServiceCategory = "screen"
	ServiceBattery      ServiceCategory = "battery"
	ServiceCharging     ServiceCategory = "charging"
	ServiceWaterDamage  ServiceCategory = "water_damage"
	ServiceSoftware     ServiceCategory = "software"
	ServiceHardware     ServiceCategory = "hardware"
	ServiceDataRecovery ServiceCategory = "data_recovery"
)

// Device is an immutable catalog entry; booking sessions reference it by ID.
type Device struct {
	ID               string           `json:"id"`
	Brand            string           `json:"brand"`
	Category         DeviceCategory   `json:"category"`
	Model            string           `json:"model"`
	Year             int              `json:"year"`
	Difficulty       RepairDifficulty `json:"difficulty"`
	AvgRepairTimeMin int              `json:"avgRepairTimeMin"`
	PartAvailability PartAvailability `json:"partAvailability"`
	Active           bool             `json:"active"`
}

// RepairService is an immutable catalog entry describing one repair offering.
type RepairService struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Category         ServiceCategory  `json:"category"`
	BasePrice        float64          `json:"basePrice"`
	EstimatedTimeMin int              `json:"estimatedTimeMin"`
	Difficulty       RepairDifficulty `json:"difficulty"`
	DeviceCategories []DeviceCategory `json:"deviceCategories"`
	WarrantyDays     int              `json:"warrantyDays"`
	Active           bool             `json:"active"`
}

// AppliesTo reports whether the service covers devices of the given category.
func (s RepairService) AppliesTo(cat DeviceCategory) bool {
	for _, c := range s.DeviceCategories {
		if c == cat {
			return true
		}
	}
	return false
}
