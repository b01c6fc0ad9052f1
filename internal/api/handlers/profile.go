package handlers

import (
	"net/http"

	"ecclesia-backend/internal/auth"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the caller's own profile and tenant
type ProfileHandler struct {
	service service.ProfileServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service service.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetMyProfile handles GET /api/v1/me/profile
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.Profile "Caller's profile"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Security BearerAuth
// @Router /me/profile [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		respondError(c, apperrors.ErrPrincipalMissing)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetMyTenant handles GET /api/v1/me/tenant
// @Summary Get my tenant
// @Tags profile
// @Produce json
// @Success 200 {object} models.Tenant "Caller's tenant"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 404 {object} ErrorResponse "Profile or tenant not found"
// @Security BearerAuth
// @Router /me/tenant [get]
func (h *ProfileHandler) GetMyTenant(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		respondError(c, apperrors.ErrPrincipalMissing)
		return
	}

	tenant, err := h.service.GetTenant(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}
