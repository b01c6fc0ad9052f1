package rest

import (
	"context"
	"net/http"
	"net/url"

	"ecclesia-backend/internal/database/models"
	apperrors "ecclesia-backend/internal/errors"

	"github.com/google/uuid"
)

// ProfileStore implements the profile repository over the hosted table API
type ProfileStore struct {
	client *Client
}

// NewProfileStore creates a new profile store
func NewProfileStore(client *Client) *ProfileStore {
	return &ProfileStore{client: client}
}

type profileInsert struct {
	ID       uuid.UUID   `json:"id"`
	TenantID uuid.UUID   `json:"tenant_id"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email,omitempty"`
	Role     models.Role `json:"role"`
}

// Create inserts one profile and reads back the created row
func (s *ProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	var created models.Profile
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/rest/v1/profiles",
		body: profileInsert{
			ID:       profile.ID,
			TenantID: profile.TenantID,
			FullName: profile.FullName,
			Email:    profile.Email,
			Role:     profile.Role,
		},
		accept: mediaObject,
		prefer: "return=representation",
	}, &created)
	if err != nil {
		return err
	}
	*profile = created
	return nil
}

// GetByID retrieves the profile of a principal
func (s *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.get(ctx, id, "*")
}

// GetWithTenant retrieves a profile with its tenant embedded
func (s *ProfileStore) GetWithTenant(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.get(ctx, id, "*,tenant:tenants(*)")
}

func (s *ProfileStore) get(ctx context.Context, id uuid.UUID, sel string) (*models.Profile, error) {
	var profile models.Profile
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/profiles",
		query:  url.Values{"id": {"eq." + id.String()}, "select": {sel}},
		accept: mediaObject,
	}, &profile)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
