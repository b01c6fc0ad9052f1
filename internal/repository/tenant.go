package repository

import (
	"context"
	"errors"

	"ecclesia-backend/internal/database/models"
	apperrors "ecclesia-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantRepository handles database operations for tenants
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts a tenant. The ID and timestamps are filled from the
// RETURNING clause, so a failed insert leaves the struct without an ID.
func (r *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// ProbeSchema checks that the tenants table and the columns bootstrap relies on are visible
func (r *TenantRepository) ProbeSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`SELECT id, created_by FROM tenants LIMIT 0`).Error
}
