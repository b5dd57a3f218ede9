package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/service"
)

// ProfileHandler serves profile lookup and registration.
type ProfileHandler struct {
	profiles *service.ProfileService
	log      *logger.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

// Get returns the caller's profile. 404 missing_profile when none exists.
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profiles.Current(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Register creates a profile for a first-time identity.
func (h *ProfileHandler) Register(c *gin.Context) {
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.profiles.Register(c.Request.Context(), identity(c), req.DisplayName)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}
