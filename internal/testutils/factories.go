package testutils

import (
	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/database/models"

	"github.com/google/uuid"
)

// TenantFactory provides methods to create test Tenant data
type TenantFactory struct{}

// NewTenantFactory creates a new TenantFactory
func NewTenantFactory() *TenantFactory {
	return &TenantFactory{}
}

// Create creates an unsaved test Tenant. The ID is left empty so the
// database assigns it, the same way bootstrap inserts tenants.
func (f *TenantFactory) Create() *models.Tenant {
	return &models.Tenant{
		Name:      "Igreja Batista Central",
		Address:   "Rua das Flores, 100",
		CreatedBy: uuid.New(),
	}
}

// WithName sets a custom name for the tenant
func (f *TenantFactory) WithName(name string) *models.Tenant {
	tenant := f.Create()
	tenant.Name = name
	return tenant
}

// WithCreator sets the principal that created the tenant
func (f *TenantFactory) WithCreator(principalID uuid.UUID) *models.Tenant {
	tenant := f.Create()
	tenant.CreatedBy = principalID
	return tenant
}

// ProfileFactory provides methods to create test Profile data
type ProfileFactory struct{}

// NewProfileFactory creates a new ProfileFactory
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{}
}

// Create creates a test member Profile for a random principal in the given tenant
func (f *ProfileFactory) Create(tenantID uuid.UUID) *models.Profile {
	return &models.Profile{
		ID:       uuid.New(),
		TenantID: tenantID,
		FullName: "Maria Souza",
		Email:    "maria.souza@test.org",
		Role:     models.RoleMember,
	}
}

// Admin creates the top-role Profile bootstrap would link for principalID
func (f *ProfileFactory) Admin(principalID, tenantID uuid.UUID) *models.Profile {
	profile := f.Create(tenantID)
	profile.ID = principalID
	profile.FullName = "Pr. João Silva"
	profile.Email = "joao.silva@test.org"
	profile.Role = models.TopRole
	return profile
}

// PrincipalFactory provides methods to create authenticated principals
type PrincipalFactory struct{}

// Create creates a principal with a random ID
func (f *PrincipalFactory) Create() *auth.Principal {
	return &auth.Principal{ID: uuid.New(), Email: "joao.silva@test.org"}
}

// FactorySet provides access to all factories
type FactorySet struct {
	Tenant    *TenantFactory
	Profile   *ProfileFactory
	Principal *PrincipalFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Tenant:    NewTenantFactory(),
		Profile:   NewProfileFactory(),
		Principal: &PrincipalFactory{},
	}
}

// CreateBootstrappedTenant returns a tenant and its admin profile for one principal.
// The profile's TenantID must be filled in once the tenant is saved.
func (fs *FactorySet) CreateBootstrappedTenant() (*auth.Principal, *models.Tenant, *models.Profile) {
	principal := fs.Principal.Create()
	tenant := fs.Tenant.WithCreator(principal.ID)
	profile := fs.Profile.Admin(principal.ID, uuid.Nil)
	return principal, tenant, profile
}
