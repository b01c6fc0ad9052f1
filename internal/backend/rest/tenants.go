package rest

import (
	"context"
	"net/http"
	"net/url"

	"ecclesia-backend/internal/database/models"
	apperrors "ecclesia-backend/internal/errors"

	"github.com/google/uuid"
)

// TenantStore implements the tenant repository over the hosted table API
type TenantStore struct {
	client *Client
}

// NewTenantStore creates a new tenant store
func NewTenantStore(client *Client) *TenantStore {
	return &TenantStore{client: client}
}

type tenantInsert struct {
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedBy uuid.UUID `json:"created_by"`
}

// Create inserts one tenant and reads back the created row
func (s *TenantStore) Create(ctx context.Context, tenant *models.Tenant) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	var created models.Tenant
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/rest/v1/tenants",
		body:   tenantInsert{Name: tenant.Name, Address: tenant.Address, CreatedBy: tenant.CreatedBy},
		accept: mediaObject,
		prefer: "return=representation",
	}, &created)
	if err != nil {
		return err
	}
	*tenant = created
	return nil
}

// GetByID retrieves a tenant by ID
func (s *TenantStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/tenants",
		query:  url.Values{"id": {"eq." + id.String()}, "select": {"*"}},
		accept: mediaObject,
	}, &tenant)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// ProbeSchema selects no rows but forces the API to resolve the columns bootstrap writes
func (s *TenantStore) ProbeSchema(ctx context.Context) error {
	var rows []map[string]interface{}
	return s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/tenants",
		query:  url.Values{"select": {"id,created_by"}, "limit": {"0"}},
	}, &rows)
}
