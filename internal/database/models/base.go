package models

import (
	"time"
)

// Timestamps provides the audit columns shared by every tenant-scoped table
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
