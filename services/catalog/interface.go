package catalog

import (
	"errors"

	"fixpoint/models"
)

var (
	ErrDeviceNotFound  = errors.New("device not found")
	ErrServiceNotFound = errors.New("repair service not found")
)

// Service defines read access to the device and repair-service catalog.
// All operations are pure reads over static data; the only failure mode is
// not-found.
type Service interface {
	GetDevice(id string) (*models.Device, error)
	GetService(id string) (*models.RepairService, error)
	ListDevices() []models.Device
	SearchDevices(query string) []models.Device
	CompatibleServices(deviceID string) ([]models.RepairService, error)
}

// DefaultCatalogService implements Service over in-memory maps seeded once at
// construction.
type DefaultCatalogService struct {
	devices    map[string]models.Device
	services   map[string]models.RepairService
	deviceIDs  []string
	serviceIDs []string
}
