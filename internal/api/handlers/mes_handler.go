// internal/api/handlers/mes_handler.go
package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"five-whys-api-server/internal/mes"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/repository"
	"five-whys-api-server/internal/s3"
)

type MesHandler struct {
	Importer *mes.Importer
	Events   *repository.MesRepo
	// Archiver keeps a copy of every imported workbook; nil when S3 is
	// disabled in config.
	Archiver *s3.Archiver
}

// ImportWorkbook ingests an uploaded MES downtime export. Multipart form,
// file field "file".
func (h *MesHandler) ImportWorkbook(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workbook file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	// Buffer the upload once: the importer and the archiver both need to
	// read it from the start.
	raw, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}

	result, err := h.Importer.Import(c.Request.Context(), bytes.NewReader(raw), models.EventCategories)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"status":      "success",
		"batchID":     result.BatchID,
		"accepted":    result.Accepted,
		"filteredOut": result.FilteredOut,
		"duplicates":  result.Duplicates,
	}

	if h.Archiver != nil {
		url, err := h.Archiver.ArchiveWorkbook(c.Request.Context(), bytes.NewReader(raw), result.BatchID)
		if err != nil {
			// The import itself succeeded; losing the archive copy is
			// only worth a warning.
			slog.Error("workbook archival failed", "batchID", result.BatchID, "err", err)
			response["warning"] = "workbook archival failed: " + err.Error()
		} else {
			response["archiveURL"] = url
		}
	}

	c.JSON(http.StatusOK, response)
}

// ListEvents returns every imported downtime event with localized shift
// labels.
func (h *MesHandler) ListEvents(c *gin.Context) {
	events, err := h.Events.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []models.MesEvent{}
	}
	c.JSON(http.StatusOK, events)
}
