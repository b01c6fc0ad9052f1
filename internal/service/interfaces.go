package service

import (
	"context"

	"ecclesia-backend/internal/bootstrap"
	"ecclesia-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// BootstrapServiceInterface defines the interface for tenant bootstrap
type BootstrapServiceInterface interface {
	Bootstrap(ctx context.Context, req *BootstrapRequest, report bootstrap.Reporter, onComplete func()) (*BootstrapResponse, error)
}

// SystemServiceInterface defines the interface for the system status probe
type SystemServiceInterface interface {
	Status(ctx context.Context) (*SystemStatusResponse, error)
}

// ProfileServiceInterface defines the interface for reading the caller's profile and tenant
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, principalID uuid.UUID) (*models.Profile, error)
	GetTenant(ctx context.Context, principalID uuid.UUID) (*models.Tenant, error)
}

// Bootstrapper runs the bootstrap procedure; *bootstrap.Runner implements it
type Bootstrapper interface {
	Run(ctx context.Context, req bootstrap.Request, report bootstrap.Reporter, onComplete func()) (*bootstrap.Result, error)
	MaxAttempts() int
}
