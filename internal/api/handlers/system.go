package handlers

import (
	"net/http"

	"ecclesia-backend/internal/logger"
	"ecclesia-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SystemHandler reports which screen the client should show
type SystemHandler struct {
	service service.SystemServiceInterface
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(service service.SystemServiceInterface) *SystemHandler {
	return &SystemHandler{service: service}
}

// Status handles GET /api/v1/system/status
// @Summary System status
// @Description Probe the schema and the caller's profile. Returns setup_required, onboarding_required or ready.
// @Tags system
// @Produce json
// @Success 200 {object} service.SystemStatusResponse "Current status"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 503 {object} map[string]interface{} "Data store unavailable"
// @Security BearerAuth
// @Router /system/status [get]
func (h *SystemHandler) Status(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context())
	if err != nil {
		if status := errorStatus(err); status == http.StatusUnauthorized {
			respondError(c, err)
			return
		}
		logger.WithContext(c.Request.Context()).WithError(err).Warn("system status probe failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
