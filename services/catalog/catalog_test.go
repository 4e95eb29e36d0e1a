package catalog

import (
	"testing"

	"fixpoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDevice(t *testing.T) {
	cat := NewDefault()

	device, err := cat.GetDevice("iphone-13")
	require.NoError(t, err)
	assert.Equal(t, "Apple", device.Brand)
	assert.Equal(t, models.DifficultyMedium, device.Difficulty)

	_, err = cat.GetDevice("nokia-3310")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestGetService(t *testing.T) {
	cat := NewDefault()

	svc, err := cat.GetService("screen-replacement")
	require.NoError(t, err)
	assert.InDelta(t, 89.99, svc.BasePrice, 1e-9)

	_, err = cat.GetService("unicorn-polish")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestListDevicesExcludesInactive(t *testing.T) {
	cat := NewDefault()
	devices := cat.ListDevices()
	require.NotEmpty(t, devices)
	for _, d := range devices {
		assert.True(t, d.Active)
		assert.NotEqual(t, "airpods-pro-2", d.ID)
	}
}

func TestListDevicesStableOrder(t *testing.T) {
	cat := NewDefault()
	first := cat.ListDevices()
	second := cat.ListDevices()
	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].ID, first[i].ID)
	}
}

func TestSearchDevices(t *testing.T) {
	cat := NewDefault()

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{
			name:    "by brand case insensitive",
			query:   "samsung",
			wantIDs: []string{"galaxy-s23"},
		},
		{
			name:    "by model fragment",
			query:   "ThinkPad",
			wantIDs: []string{"thinkpad-x1-g11"},
		},
		{
			name:    "no match",
			query:   "toaster",
			wantIDs: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, d := range cat.SearchDevices(tt.query) {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearchDevicesEmptyQueryListsAll(t *testing.T) {
	cat := NewDefault()
	assert.Equal(t, cat.ListDevices(), cat.SearchDevices("  "))
}

func TestSearchDevicesSkipsInactive(t *testing.T) {
	cat := NewDefault()
	for _, d := range cat.SearchDevices("AirPods") {
		assert.NotEqual(t, "airpods-pro-2", d.ID)
	}
}

func TestCompatibleServicesByCategory(t *testing.T) {
	cat := NewDefault()

	services, err := cat.CompatibleServices("ps5")
	require.NoError(t, err)

	ids := make(map[string]bool, len(services))
	for _, s := range services {
		ids[s.ID] = true
	}
	assert.True(t, ids["hdmi-port-repair"])
	assert.True(t, ids["charging-port-repair"])
	assert.False(t, ids["screen-replacement"], "gaming consoles have no screen service")
	assert.False(t, ids["water-damage-treatment"])
}

func TestCompatibleServicesUnknownDevice(t *testing.T) {
	cat := NewDefault()
	_, err := cat.CompatibleServices("nokia-3310")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestCompatibleServicesHiddenForOtherCategories(t *testing.T) {
	cat := NewDefault()
	services, err := cat.CompatibleServices("iphone-13")
	require.NoError(t, err)
	for _, s := range services {
		assert.NotEqual(t, "hdmi-port-repair", s.ID)
		assert.NotEqual(t, "motherboard-repair", s.ID)
	}
}
