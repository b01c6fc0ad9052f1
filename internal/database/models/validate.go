package models

import (
	"errors"
	"fmt"

	apperrors "ecclesia-backend/internal/errors"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// Validate checks the tenant against its validate tags
func (t *Tenant) Validate() error {
	return structError(validate.Struct(t))
}

// Validate checks the profile against its validate tags and rejects roles
// outside the known set.
func (p *Profile) Validate() error {
	if err := structError(validate.Struct(p)); err != nil {
		return err
	}
	if !p.Role.IsValid() {
		return apperrors.NewValidationError("Role", fmt.Sprintf("unknown role %q", p.Role))
	}
	return nil
}

// BeforeCreate rejects invalid tenants before the insert
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	return t.Validate()
}

// BeforeCreate rejects invalid profiles before the insert
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	return p.Validate()
}

func structError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.NewValidationError(verrs[0].Field(), fmt.Sprintf("failed on the %q rule", verrs[0].Tag()))
	}
	return err
}
