package testutils

import (
	"testing"

	"ecclesia-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateBootstrappedTenant(t *testing.T) {
	principal, tenant, profile := NewFactorySet().CreateBootstrappedTenant()

	assert.NotEqual(t, uuid.Nil, principal.ID)
	assert.Equal(t, uuid.Nil, tenant.ID)
	assert.Equal(t, principal.ID, tenant.CreatedBy)
	assert.Equal(t, principal.ID, profile.ID)
	assert.Equal(t, models.TopRole, profile.Role)
	assert.True(t, profile.Role.IsValid())
}
