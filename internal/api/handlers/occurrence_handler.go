// internal/api/handlers/occurrence_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"five-whys-api-server/internal/mailer"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/repository"
	"five-whys-api-server/internal/socket"
	"five-whys-api-server/internal/workflow"
)

type OccurrenceHandler struct {
	Engine      *workflow.Engine
	Occurrences *repository.OccurrenceRepo
	Mailer      mailer.Dispatcher
	Hub         *socket.Hub
}

// SubmitOccurrenceRequest is the 5-Why form payload.
type SubmitOccurrenceRequest struct {
	Date             string   `json:"date" binding:"required"`
	Shift            string   `json:"shift" binding:"required"`
	Time             string   `json:"time" binding:"required"`
	EventCategory    string   `json:"eventCategory" binding:"required"`
	Line             string   `json:"line" binding:"required"`
	Equipment        string   `json:"equipment" binding:"required"`
	TriggerMinutes   int      `json:"triggerMinutes" binding:"required,min=30"`
	Anomaly          string   `json:"anomaly"`
	Correction       string   `json:"correction"`
	Whys             []string `json:"whys" binding:"required,len=5"`
	FailureTypes     []string `json:"failureTypes"`
	FailureWear      []string `json:"failureWear"`
	CorrectionTypes  []string `json:"correctionTypes"`
	CorrectionWear   []string `json:"correctionWear"`
	Actions          string   `json:"actions"`
	ResponsibleID    string   `json:"responsibleIdentification"`
	ResponsibleFix   string   `json:"responsibleRepair"`
	ResponsibleEmail string   `json:"responsibleEmail" binding:"required"`
	Manager          string   `json:"manager" binding:"required"`
	MaintNotes       []string `json:"maintenanceNotes"`
	MaintOrders      []string `json:"maintenanceOrders"`
}

func (r SubmitOccurrenceRequest) toModel() models.Occurrence {
	occ := models.Occurrence{
		Date:             r.Date,
		Shift:            r.Shift,
		Time:             r.Time,
		EventCategory:    r.EventCategory,
		Line:             r.Line,
		Equipment:        r.Equipment,
		TriggerMinutes:   r.TriggerMinutes,
		Anomaly:          r.Anomaly,
		Correction:       r.Correction,
		FailureTypes:     r.FailureTypes,
		FailureWear:      r.FailureWear,
		CorrectionTypes:  r.CorrectionTypes,
		CorrectionWear:   r.CorrectionWear,
		Actions:          r.Actions,
		ResponsibleID:    r.ResponsibleID,
		ResponsibleFix:   r.ResponsibleFix,
		ResponsibleEmail: r.ResponsibleEmail,
		Manager:          r.Manager,
		MaintNotes:       r.MaintNotes,
		MaintOrders:      r.MaintOrders,
	}
	copy(occ.Whys[:], r.Whys)
	return occ
}

// SubmitOccurrence handles a new 5-Why form submission.
func (h *OccurrenceHandler) SubmitOccurrence(c *gin.Context) {
	var req SubmitOccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Engine.Submit(c.Request.Context(), req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(socket.Event{
		Action:      "submitted",
		DocumentKey: result.Occurrence.DocumentKey,
		Status:      result.Occurrence.Status,
	})

	response := gin.H{"status": "success", "document": result.Occurrence.DocumentKey}
	if warning := dispatchAll(c.Request.Context(), h.Mailer, result.Notifications); warning != "" {
		response["warning"] = warning
	}
	c.JSON(http.StatusCreated, response)
}

// ListOccurrences returns records matching the review page filters.
func (h *OccurrenceHandler) ListOccurrences(c *gin.Context) {
	filter := repository.OccurrenceFilter{
		DateFrom:    c.Query("from"),
		DateTo:      c.Query("to"),
		Responsible: c.Query("responsible"),
		Manager:     c.Query("manager"),
		Status:      c.Query("status"),
	}

	occurrences, err := h.Occurrences.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if occurrences == nil {
		occurrences = []models.Occurrence{}
	}
	c.JSON(http.StatusOK, occurrences)
}

// GetOccurrence returns a single record by document key.
func (h *OccurrenceHandler) GetOccurrence(c *gin.Context) {
	occ, err := h.Occurrences.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, occ)
}
