package catalog

import (
	"sort"
	"strings"

	"fixpoint/models"
)

// New builds a catalog from the given entries. IDs are indexed for stable,
// deterministic listing order.
func New(devices []models.Device, services []models.RepairService) *DefaultCatalogService {
	c := &DefaultCatalogService{
		devices:  make(map[string]models.Device, len(devices)),
		services: make(map[string]models.RepairService, len(services)),
	}
	for _, d := range devices {
		c.devices[d.ID] = d
		c.deviceIDs = append(c.deviceIDs, d.ID)
	}
	for _, s := range services {
		c.services[s.ID] = s
		c.serviceIDs = append(c.serviceIDs, s.ID)
	}
	sort.Strings(c.deviceIDs)
	sort.Strings(c.serviceIDs)
	return c
}

// NewDefault builds a catalog seeded with the standard repair shop data.
func NewDefault() *DefaultCatalogService {
	return New(seedDevices, seedServices)
}

// GetDevice returns the device with the given id.
func (c *DefaultCatalogService) GetDevice(id string) (*models.Device, error) {
	d, ok := c.devices[id]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return &d, nil
}

// GetService returns the repair service with the given id.
func (c *DefaultCatalogService) GetService(id string) (*models.RepairService, error) {
	s, ok := c.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return &s, nil
}

// ListDevices returns all active devices in stable id order.
func (c *DefaultCatalogService) ListDevices() []models.Device {
	out := make([]models.Device, 0, len(c.deviceIDs))
	for _, id := range c.deviceIDs {
		if d := c.devices[id]; d.Active {
			out = append(out, d)
		}
	}
	return out
}

// SearchDevices returns active devices whose brand or model contains the
// query, case-insensitively. An empty query lists everything.
func (c *DefaultCatalogService) SearchDevices(query string) []models.Device {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.ListDevices()
	}
	var out []models.Device
	for _, id := range c.deviceIDs {
		d := c.devices[id]
		if !d.Active {
			continue
		}
		haystack := strings.ToLower(d.Brand + " " + d.Model)
		if strings.Contains(haystack, q) {
			out = append(out, d)
		}
	}
	return out
}

// CompatibleServices returns the active repair services applicable to the
// device's category.
func (c *DefaultCatalogService) CompatibleServices(deviceID string) ([]models.RepairService, error) {
	d, ok := c.devices[deviceID]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	var out []models.RepairService
	for _, id := range c.serviceIDs {
		s := c.services[id]
		if s.Active && s.AppliesTo(d.Category) {
			out = append(out, s)
		}
	}
	return out, nil
}
