package service

import (
	"context"
	"fmt"

	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/bootstrap"
	"ecclesia-backend/internal/database/models"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/repository"
)

// System states reported to the client on load
const (
	StatusSetupRequired      = "setup_required"
	StatusOnboardingRequired = "onboarding_required"
	StatusReady              = "ready"
)

// SystemService decides which screen a signed-in client should land on
type SystemService struct {
	tenants  repository.TenantRepositoryInterface
	profiles repository.ProfileRepositoryInterface
}

// NewSystemService creates a new system service
func NewSystemService(tenants repository.TenantRepositoryInterface, profiles repository.ProfileRepositoryInterface) *SystemService {
	return &SystemService{tenants: tenants, profiles: profiles}
}

// SystemStatusResponse represents the outcome of the status probe
type SystemStatusResponse struct {
	Status  string          `json:"status" example:"ready"`
	Code    string          `json:"code,omitempty" example:"42P01"`
	Message string          `json:"message,omitempty"`
	Profile *models.Profile `json:"profile,omitempty"`
	Tenant  *models.Tenant  `json:"tenant,omitempty"`
}

// Status probes the schema, then looks up the caller's profile. Errors that
// are not schema signals are returned for the caller to report as unavailable.
func (s *SystemService) Status(ctx context.Context) (*SystemStatusResponse, error) {
	if err := s.tenants.ProbeSchema(ctx); err != nil {
		if resp, ok := setupRequired(err); ok {
			return resp, nil
		}
		return nil, fmt.Errorf("schema probe failed: %w", err)
	}

	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, apperrors.ErrPrincipalMissing
	}

	profile, err := s.profiles.GetWithTenant(ctx, principal.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return &SystemStatusResponse{Status: StatusOnboardingRequired}, nil
		}
		if resp, ok := setupRequired(err); ok {
			return resp, nil
		}
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}

	tenant := profile.Tenant
	profile.Tenant = nil
	return &SystemStatusResponse{Status: StatusReady, Profile: profile, Tenant: tenant}, nil
}

func setupRequired(err error) (*SystemStatusResponse, bool) {
	if bootstrap.Classify(err) != bootstrap.KindTransientSchema {
		return nil, false
	}
	code, message, _ := bootstrap.BackendDetails(err)
	return &SystemStatusResponse{Status: StatusSetupRequired, Code: code, Message: message}, true
}
