package service

import (
	"context"

	"ecclesia-backend/internal/database/models"
	"ecclesia-backend/internal/repository"

	"github.com/google/uuid"
)

// ProfileService reads the caller's own profile and tenant
type ProfileService struct {
	profiles repository.ProfileRepositoryInterface
	tenants  repository.TenantRepositoryInterface
}

// NewProfileService creates a new profile service
func NewProfileService(profiles repository.ProfileRepositoryInterface, tenants repository.TenantRepositoryInterface) *ProfileService {
	return &ProfileService{profiles: profiles, tenants: tenants}
}

// GetProfile returns the profile linked to a principal
func (s *ProfileService) GetProfile(ctx context.Context, principalID uuid.UUID) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, principalID)
}

// GetTenant returns the tenant the principal's profile belongs to
func (s *ProfileService) GetTenant(ctx context.Context, principalID uuid.UUID) (*models.Tenant, error) {
	profile, err := s.profiles.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return s.tenants.GetByID(ctx, profile.TenantID)
}
