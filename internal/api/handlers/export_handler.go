package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"five-whys-api-server/internal/export"
	"five-whys-api-server/internal/repository"
)

type ExportHandler struct {
	Occurrences *repository.OccurrenceRepo
}

func filterFromQuery(c *gin.Context) repository.OccurrenceFilter {
	return repository.OccurrenceFilter{
		DateFrom:    c.Query("from"),
		DateTo:      c.Query("to"),
		Responsible: c.Query("responsible"),
		Manager:     c.Query("manager"),
		Status:      c.Query("status"),
	}
}

// ExportCSV downloads the filtered record set as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	occurrences, err := h.Occurrences.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.OccurrencesCSV(&buf, occurrences); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render CSV"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="dados.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX downloads the filtered record set as a workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	occurrences, err := h.Occurrences.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := export.OccurrencesXLSX(occurrences)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render workbook"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="dados.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
