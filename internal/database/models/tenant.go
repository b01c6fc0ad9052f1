package models

import (
	"github.com/google/uuid"
)

// Tenant represents the root entity for multi-tenancy. Its ID scopes every
// other row in the system and never changes once issued by the database.
type Tenant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Address   string    `json:"address,omitempty" gorm:"type:text"`
	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null;index"`
	Timestamps
}

// TableName returns the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}
