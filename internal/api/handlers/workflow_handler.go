// internal/api/handlers/workflow_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/mailer"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/socket"
	"five-whys-api-server/internal/workflow"
)

type WorkflowHandler struct {
	Engine *workflow.Engine
	Mailer mailer.Dispatcher
	Hub    *socket.Hub
}

// DecisionRequest carries the manager's verdict on a record.
type DecisionRequest struct {
	ManagerCode string `json:"managerCode" binding:"required"`
	Comment     string `json:"comment"`
}

// RectifyRequest carries the fields of a rejected record the responsible
// edited. Keys are the stored field names; anything absent keeps its
// stored value.
type RectifyRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// editableFields guards the merge: a rectification may only touch the form
// fields, never the status or an unknown key.
var editableFields = map[string]struct{}{
	models.FieldDate: {}, models.FieldShift: {}, models.FieldTime: {},
	models.FieldEventCategory: {}, models.FieldLine: {}, models.FieldEquipment: {},
	models.FieldTriggerMinutes: {}, models.FieldAnomaly: {}, models.FieldCorrection: {},
	models.FieldWhy1: {}, models.FieldWhy2: {}, models.FieldWhy3: {},
	models.FieldWhy4: {}, models.FieldWhy5: {},
	models.FieldFailureTypes: {}, models.FieldFailureWear: {},
	models.FieldCorrectionTypes: {}, models.FieldCorrectionWear: {},
	models.FieldActions: {}, models.FieldResponsibleID: {}, models.FieldResponsibleFix: {},
	models.FieldResponsibleEmail: {}, models.FieldManager: {},
	models.FieldMaintNotes: {}, models.FieldMaintOrders: {},
}

// Approve handles the manager approving a record.
func (h *WorkflowHandler) Approve(c *gin.Context) {
	h.decide(c, "approved", h.Engine.Approve)
}

// Reject handles the manager rejecting a record.
func (h *WorkflowHandler) Reject(c *gin.Context) {
	h.decide(c, "rejected", h.Engine.Reject)
}

type decisionFunc func(ctx context.Context, key, actorCode, comment string) (workflow.Result, error)

func (h *WorkflowHandler) decide(c *gin.Context, action string, transition decisionFunc) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := transition(c.Request.Context(), c.Param("id"), req.ManagerCode, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(socket.Event{
		Action:      action,
		DocumentKey: result.Occurrence.DocumentKey,
		Status:      result.Occurrence.Status,
	})

	response := gin.H{"status": "success", "document": result.Occurrence.DocumentKey, "recordStatus": result.Occurrence.Status}
	if warning := dispatchAll(c.Request.Context(), h.Mailer, result.Notifications); warning != "" {
		response["warning"] = warning
	}
	c.JSON(http.StatusOK, response)
}

// Rectify handles the responsible resubmitting an edited record.
func (h *WorkflowHandler) Rectify(c *gin.Context) {
	var req RectifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for field := range req.Fields {
		if _, ok := editableFields[field]; !ok {
			respondError(c, errs.Validationf("field %q cannot be edited", field))
			return
		}
	}

	result, err := h.Engine.Rectify(c.Request.Context(), c.Param("id"), req.Fields)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(socket.Event{
		Action:      "rectified",
		DocumentKey: result.Occurrence.DocumentKey,
		Status:      result.Occurrence.Status,
	})

	response := gin.H{"status": "success", "document": result.Occurrence.DocumentKey, "recordStatus": result.Occurrence.Status}
	if warning := dispatchAll(c.Request.Context(), h.Mailer, result.Notifications); warning != "" {
		response["warning"] = warning
	}
	c.JSON(http.StatusOK, response)
}
