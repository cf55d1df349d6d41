package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seatlabs/library-layout-backend/internal/services"
)

// CatalogHandler serves the zone and amenity reference data
type CatalogHandler struct {
	catalog   *services.CatalogService
	generator *services.GeneratorService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *services.CatalogService, generator *services.GeneratorService) *CatalogHandler {
	return &CatalogHandler{
		catalog:   catalog,
		generator: generator,
	}
}

// GetZones handles GET /api/v1/catalog/zones
func (h *CatalogHandler) GetZones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"zones": h.catalog.Zones(),
	})
}

// GetAmenities handles GET /api/v1/catalog/amenities
func (h *CatalogHandler) GetAmenities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"amenities": h.catalog.Amenities(),
	})
}

// GetTemplates handles GET /api/v1/catalog/templates
func (h *CatalogHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"templates": h.generator.Templates(),
	})
}
