package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/repository"
)

type PendencyHandler struct {
	Pendencies *repository.PendencyRepo
}

type CreatePendencyRequest struct {
	Date          string `json:"date" binding:"required"`
	Shift         string `json:"shift" binding:"required"`
	EventCategory string `json:"eventCategory"`
	Line          string `json:"line" binding:"required"`
	Equipment     string `json:"equipment" binding:"required"`
	Department    string `json:"department"`
	User          string `json:"user"`
	Description   string `json:"description"`
}

// CreatePendency flags a potential 5-Why for later verification.
func (h *PendencyHandler) CreatePendency(c *gin.Context) {
	var req CreatePendencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.Pendencies.Create(c.Request.Context(), models.Pendency{
		Date:          req.Date,
		Shift:         req.Shift,
		EventCategory: req.EventCategory,
		Line:          req.Line,
		Equipment:     req.Equipment,
		Department:    req.Department,
		User:          req.User,
		Description:   req.Description,
	}, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "document": key})
}

// ListPendencies returns the latest pendencies, newest last.
func (h *PendencyHandler) ListPendencies(c *gin.Context) {
	tail, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	pendencies, err := h.Pendencies.List(c.Request.Context(), tail)
	if err != nil {
		respondError(c, err)
		return
	}
	if pendencies == nil {
		pendencies = []models.Pendency{}
	}
	c.JSON(http.StatusOK, pendencies)
}
