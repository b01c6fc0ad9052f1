package handlers

import (
	"net/http"

	"ecclesia-backend/internal/bootstrap"
	"ecclesia-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// BootstrapHandler handles tenant bootstrap requests
type BootstrapHandler struct {
	service service.BootstrapServiceInterface
}

// NewBootstrapHandler creates a new bootstrap handler
func NewBootstrapHandler(service service.BootstrapServiceInterface) *BootstrapHandler {
	return &BootstrapHandler{service: service}
}

// Bootstrap handles POST /api/v1/bootstrap
// @Summary Bootstrap a tenant
// @Description Create a tenant and link the caller to it as its first administrator. Retries while the schema is not yet visible.
// @Tags bootstrap
// @Accept json
// @Produce json
// @Param request body service.BootstrapRequest true "Tenant and operator names"
// @Success 201 {object} service.BootstrapResponse "Tenant bootstrapped"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "No authenticated session"
// @Failure 403 {object} ErrorResponse "Rejected by row-level security"
// @Failure 409 {object} ErrorResponse "Profile already exists or bootstrap already running"
// @Failure 502 {object} ErrorResponse "Data store error"
// @Failure 503 {object} ErrorResponse "Schema did not become ready"
// @Security BearerAuth
// @Router /bootstrap [post]
func (h *BootstrapHandler) Bootstrap(c *gin.Context) {
	var req service.BootstrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.service.Bootstrap(c.Request.Context(), &req, nil, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Stream handles POST /api/v1/bootstrap/stream
// @Summary Bootstrap a tenant with live progress
// @Description Same as POST /bootstrap but answers with server-sent events: one "status" event per progress message, then a "done" event carrying the result or an "error" event.
// @Tags bootstrap
// @Accept json
// @Produce text/event-stream
// @Param request body service.BootstrapRequest true "Tenant and operator names"
// @Success 200 {string} string "Event stream"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "No authenticated session"
// @Failure 409 {object} ErrorResponse "Profile already exists or bootstrap already running"
// @Security BearerAuth
// @Router /bootstrap/stream [post]
func (h *BootstrapHandler) Stream(c *gin.Context) {
	var req service.BootstrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	// The authenticating message is held back until the session guard has
	// passed, so a rejected caller still gets a plain status code.
	var held []string
	started := false
	report := func(msg string) {
		if !started && msg == bootstrap.MsgAuthenticating {
			held = append(held, msg)
			return
		}
		if !started {
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Header("X-Accel-Buffering", "no")
			started = true
			for _, m := range held {
				c.SSEvent("status", m)
			}
		}
		c.SSEvent("status", msg)
		c.Writer.Flush()
	}

	resp, err := h.service.Bootstrap(c.Request.Context(), &req, report, nil)
	if err != nil {
		if !started {
			respondError(c, err)
			return
		}
		_ = c.Error(err)
		c.SSEvent("error", newErrorResponse(err))
		c.Writer.Flush()
		return
	}

	c.SSEvent("done", resp)
	c.Writer.Flush()
}
