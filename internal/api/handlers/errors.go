package handlers

import (
	"errors"
	"net/http"

	"ecclesia-backend/internal/bootstrap"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error    string `json:"error" example:"database did not become ready after 15 attempts"`
	Kind     string `json:"kind,omitempty" example:"provisioning_timeout"`
	Code     string `json:"code,omitempty" example:"PGRST205"`
	Attempts int    `json:"attempts,omitempty" example:"15"`
}

// errorStatus maps service and bootstrap errors onto HTTP status codes
func errorStatus(err error) int {
	var bErr *bootstrap.Error
	if errors.As(err, &bErr) {
		switch bErr.Kind {
		case bootstrap.KindUnauthenticated:
			return http.StatusUnauthorized
		case bootstrap.KindPermissionDenied:
			return http.StatusForbidden
		case bootstrap.KindProvisioningTimeout:
			return http.StatusServiceUnavailable
		default:
			return http.StatusBadGateway
		}
	}

	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsAuthentication(err):
		return http.StatusUnauthorized
	case apperrors.IsAuthorization(err):
		return http.StatusForbidden
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsAlreadyExists(err), errors.Is(err, apperrors.ErrBootstrapInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: bootstrap.OperatorMessage(err)}
	var bErr *bootstrap.Error
	if errors.As(err, &bErr) {
		resp.Kind = bErr.Kind.String()
		resp.Code = bErr.Code
		resp.Attempts = bErr.Attempts
	}
	return resp
}

// respondError writes err as JSON with the status errorStatus picks
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).WithError(err).Error("request failed")
	}
	_ = c.Error(err)
	c.JSON(status, newErrorResponse(err))
}
