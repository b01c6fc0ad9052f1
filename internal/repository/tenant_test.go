//go:build integration
// +build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"ecclesia-backend/internal/bootstrap"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

// TenantRepositoryTestSuite tests the TenantRepository
type TenantRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TenantRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *TenantRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewTenantRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *TenantRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TenantRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TenantRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate checks that the database assigns the ID and timestamps
func (suite *TenantRepositoryTestSuite) TestCreate() {
	tenant := suite.factories.Tenant.WithName("Comunidade Vida Nova")

	err := suite.repo.Create(suite.ctx, tenant)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, tenant.ID)
	suite.NotZero(tenant.CreatedAt)
	suite.NotZero(tenant.UpdatedAt)
}

// TestGetByID tests retrieving a tenant by ID
func (suite *TenantRepositoryTestSuite) TestGetByID() {
	tenant := suite.factories.Tenant.Create()
	suite.Require().NoError(suite.repo.Create(suite.ctx, tenant))

	found, err := suite.repo.GetByID(suite.ctx, tenant.ID)

	suite.NoError(err)
	suite.Equal(tenant.Name, found.Name)
	suite.Equal(tenant.CreatedBy, found.CreatedBy)
}

// TestGetByIDNotFound tests retrieving a non-existent tenant
func (suite *TenantRepositoryTestSuite) TestGetByIDNotFound() {
	found, err := suite.repo.GetByID(suite.ctx, uuid.New())

	suite.Nil(found)
	suite.True(errors.Is(err, apperrors.ErrTenantNotFound))
}

// TestProbeSchema passes once the tables exist
func (suite *TenantRepositoryTestSuite) TestProbeSchema() {
	suite.NoError(suite.repo.ProbeSchema(suite.ctx))
}

// TestProbeSchemaMissingTable reports a transient schema signal when the table is gone
func (suite *TenantRepositoryTestSuite) TestProbeSchemaMissingTable() {
	tx := suite.baseTestSuite.DB.Begin()
	defer tx.Rollback()
	suite.Require().NoError(tx.Exec(`ALTER TABLE tenants RENAME TO tenants_hidden`).Error)

	err := NewTenantRepository(tx).ProbeSchema(suite.ctx)

	var pgErr *pgconn.PgError
	suite.Require().True(errors.As(err, &pgErr))
	suite.Equal(pgerrcode.UndefinedTable, pgErr.Code)
	suite.Equal(bootstrap.KindTransientSchema, bootstrap.Classify(err))
}

// TestCreateMissingColumn surfaces undefined_column, which bootstrap retries
func (suite *TenantRepositoryTestSuite) TestCreateMissingColumn() {
	tx := suite.baseTestSuite.DB.Begin()
	defer tx.Rollback()
	suite.Require().NoError(tx.Exec(`ALTER TABLE tenants RENAME COLUMN created_by TO created_by_hidden`).Error)

	err := NewTenantRepository(tx).Create(suite.ctx, suite.factories.Tenant.Create())

	suite.Equal(bootstrap.KindTransientSchema, bootstrap.Classify(err))
}

// TestTenantRepositoryTestSuite runs the test suite
func TestTenantRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TenantRepositoryTestSuite))
}
