package repository

import (
	"context"
	"errors"

	"ecclesia-backend/internal/database/models"
	apperrors "ecclesia-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a profile. Profile.ID must already be set to the principal ID.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	// Omit the association so a preloaded Tenant is never upserted.
	return r.db.WithContext(ctx).Omit("Tenant").Create(profile).Error
}

// GetByID retrieves the profile of a principal
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetWithTenant retrieves a profile with its tenant
func (r *ProfileRepository) GetWithTenant(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Preload("Tenant").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
