package handlers

import (
	"net/http"

	profileRepo "voltpath/database/repository/profile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler exposes profile reads.
type ProfileHandler struct {
	Repo profileRepo.ProfileRepository
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(repo profileRepo.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{Repo: repo}
}

// GetProfileByIDHandler handles GET /api/profiles/:id.
func (h *ProfileHandler) GetProfileByIDHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	profile, err := h.Repo.GetByID(id)
	if err != nil {
		logger.Error("Profile not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
