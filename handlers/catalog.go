package handlers

import (
	"net/http"

	"fixpoint/services/booking"
	"fixpoint/services/catalog"
	"fixpoint/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes read access to the device and service catalog.
type CatalogHandler struct {
	Catalog catalog.Service
}

// NewCatalogHandler wires the catalog endpoints.
func NewCatalogHandler(cat catalog.Service) *CatalogHandler {
	return &CatalogHandler{Catalog: cat}
}

// ListDevices lists active devices, optionally filtered by the q query.
func (h *CatalogHandler) ListDevices(c *gin.Context) {
	devices := h.Catalog.SearchDevices(c.Query("q"))
	utils.JSONData(c, http.StatusOK, gin.H{"devices": devices})
}

// GetDevice returns one catalog device.
func (h *CatalogHandler) GetDevice(c *gin.Context) {
	device, err := h.Catalog.GetDevice(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, booking.CodeDeviceNotFound, err.Error())
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"device": device})
}

// CompatibleServices lists the repair services applicable to a device.
func (h *CatalogHandler) CompatibleServices(c *gin.Context) {
	services, err := h.Catalog.CompatibleServices(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, booking.CodeDeviceNotFound, err.Error())
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"services": services})
}
