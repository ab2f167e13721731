// internal/api/handlers/catalog_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/repository"
)

type CatalogHandler struct {
	Catalog *repository.CatalogRepo
}

// GetLines returns the production lines of the plant catalog.
func (h *CatalogHandler) GetLines(c *gin.Context) {
	lines, err := h.Catalog.Lines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if lines == nil {
		lines = []string{}
	}
	c.JSON(http.StatusOK, lines)
}

// GetEquipment returns the equipment installed on one line.
func (h *CatalogHandler) GetEquipment(c *gin.Context) {
	equipment, err := h.Catalog.EquipmentForLine(c.Request.Context(), c.Param("line"))
	if err != nil {
		respondError(c, err)
		return
	}
	if equipment == nil {
		equipment = []string{}
	}
	c.JSON(http.StatusOK, equipment)
}

// GetEnums returns the fixed vocabularies the form selects from.
func (h *CatalogHandler) GetEnums(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"shifts":             models.Shifts,
		"eventCategories":    models.EventCategories,
		"failureTypes":       models.FailureTypes,
		"deteriorationTypes": models.DeteriorationTypes,
	})
}
