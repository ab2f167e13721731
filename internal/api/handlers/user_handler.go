package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/repository"
)

type UserHandler struct {
	Users *repository.UserRepo
}

// ListUsers returns the plant user directory.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// ListManagers returns only the directory entries occurrence forms may
// assign as coordinator.
func (h *UserHandler) ListManagers(c *gin.Context) {
	managers, err := h.Users.Managers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if managers == nil {
		managers = []models.User{}
	}
	c.JSON(http.StatusOK, managers)
}
