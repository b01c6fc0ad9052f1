//go:build integration
// +build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"ecclesia-backend/internal/database/models"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

// ProfileRepositoryTestSuite tests the ProfileRepository
type ProfileRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *ProfileRepository
	tenantRepo    *TenantRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *ProfileRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewProfileRepository(suite.baseTestSuite.DB)
	suite.tenantRepo = NewTenantRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *ProfileRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ProfileRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *ProfileRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *ProfileRepositoryTestSuite) createTenant() *models.Tenant {
	tenant := suite.factories.Tenant.Create()
	suite.Require().NoError(suite.tenantRepo.Create(suite.ctx, tenant))
	return tenant
}

// TestCreateKeepsPrincipalID checks the profile ID is the caller-supplied principal ID
func (suite *ProfileRepositoryTestSuite) TestCreateKeepsPrincipalID() {
	tenant := suite.createTenant()
	principalID := uuid.New()
	profile := suite.factories.Profile.Admin(principalID, tenant.ID)

	err := suite.repo.Create(suite.ctx, profile)

	suite.NoError(err)
	suite.Equal(principalID, profile.ID)
	suite.NotZero(profile.CreatedAt)
}

// TestCreateRejectsUnknownRole checks the model hook runs before the insert
func (suite *ProfileRepositoryTestSuite) TestCreateRejectsUnknownRole() {
	tenant := suite.createTenant()
	profile := suite.factories.Profile.Create(tenant.ID)
	profile.Role = models.Role("pastor")

	err := suite.repo.Create(suite.ctx, profile)

	suite.True(apperrors.IsValidation(err))
	_, getErr := suite.repo.GetByID(suite.ctx, profile.ID)
	suite.True(errors.Is(getErr, apperrors.ErrProfileNotFound))
}

// TestCreateRequiresTenant relies on the foreign key to reject dangling profiles
func (suite *ProfileRepositoryTestSuite) TestCreateRequiresTenant() {
	profile := suite.factories.Profile.Create(uuid.New())

	err := suite.repo.Create(suite.ctx, profile)

	var pgErr *pgconn.PgError
	suite.Require().True(errors.As(err, &pgErr))
	suite.Equal(pgerrcode.ForeignKeyViolation, pgErr.Code)
}

// TestCreateDuplicatePrincipal rejects a second profile for the same principal
func (suite *ProfileRepositoryTestSuite) TestCreateDuplicatePrincipal() {
	tenant := suite.createTenant()
	principalID := uuid.New()
	suite.Require().NoError(suite.repo.Create(suite.ctx, suite.factories.Profile.Admin(principalID, tenant.ID)))

	err := suite.repo.Create(suite.ctx, suite.factories.Profile.Admin(principalID, tenant.ID))

	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestGetByID tests retrieving a profile by principal ID
func (suite *ProfileRepositoryTestSuite) TestGetByID() {
	tenant := suite.createTenant()
	profile := suite.factories.Profile.Admin(uuid.New(), tenant.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, profile))

	found, err := suite.repo.GetByID(suite.ctx, profile.ID)

	suite.NoError(err)
	suite.Equal(models.RoleSuperAdmin, found.Role)
	suite.Equal(tenant.ID, found.TenantID)
	suite.Nil(found.Tenant)
}

// TestGetByIDNotFound tests retrieving a non-existent profile
func (suite *ProfileRepositoryTestSuite) TestGetByIDNotFound() {
	found, err := suite.repo.GetByID(suite.ctx, uuid.New())

	suite.Nil(found)
	suite.True(errors.Is(err, apperrors.ErrProfileNotFound))
}

// TestGetWithTenant preloads the tenant
func (suite *ProfileRepositoryTestSuite) TestGetWithTenant() {
	tenant := suite.createTenant()
	profile := suite.factories.Profile.Admin(uuid.New(), tenant.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, profile))

	found, err := suite.repo.GetWithTenant(suite.ctx, profile.ID)

	suite.NoError(err)
	suite.Require().NotNil(found.Tenant)
	suite.Equal(tenant.Name, found.Tenant.Name)
}

// TestDeleteTenantCascades removes profiles with their tenant
func (suite *ProfileRepositoryTestSuite) TestDeleteTenantCascades() {
	tenant := suite.createTenant()
	profile := suite.factories.Profile.Admin(uuid.New(), tenant.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, profile))

	suite.Require().NoError(suite.baseTestSuite.DB.Delete(&models.Tenant{}, "id = ?", tenant.ID).Error)

	_, err := suite.repo.GetByID(suite.ctx, profile.ID)
	suite.True(errors.Is(err, apperrors.ErrProfileNotFound))
}

// TestProfileRepositoryTestSuite runs the test suite
func TestProfileRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositoryTestSuite))
}
