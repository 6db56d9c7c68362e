package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the public doctor directory used by the booking
// flow.
type DirectoryHandler struct {
	profiles *services.ProfileService
}

func NewDirectoryHandler(profiles *services.ProfileService) *DirectoryHandler {
	return &DirectoryHandler{profiles: profiles}
}

// PublicDoctors handles GET /api/doctors.
func (h *DirectoryHandler) PublicDoctors(c *gin.Context) {
	doctors, err := h.profiles.PublicDoctors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, doctors)
}
