package repository

import (
	"context"

	"ecclesia-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// TenantRepositoryInterface defines the interface for tenant repository operations
type TenantRepositoryInterface interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	// ProbeSchema selects zero rows from the tenants table and returns the
	// backend's error when the table or one of its columns is not visible.
	ProbeSchema(ctx context.Context) error
}

// ProfileRepositoryInterface defines the interface for profile repository operations
type ProfileRepositoryInterface interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetWithTenant(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}
