package models

import (
	"github.com/google/uuid"
)

// Profile links an authenticated principal to exactly one tenant. The ID is
// the principal's ID, so it is supplied by the caller and never generated.
type Profile struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	FullName string    `json:"full_name" gorm:"not null;size:200" validate:"required,max=200"`
	Email    string    `json:"email,omitempty" gorm:"size:255" validate:"omitempty,email,max=255"`
	Role     Role      `json:"role" gorm:"type:varchar(50);not null;default:'member'" validate:"required"`
	Timestamps

	// Relationships
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
