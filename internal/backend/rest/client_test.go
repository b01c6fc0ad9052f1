package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/bootstrap"
	"ecclesia-backend/internal/database/models"
	apperrors "ecclesia-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

const testAPIKey = "anon-key"

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	c, err := NewClient(Options{
		BaseURL:    "https://project.example.co/",
		APIKey:     testAPIKey,
		HTTPClient: &http.Client{Transport: rt},
	})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "https://x.example.co"})
	assert.True(t, errors.Is(err, apperrors.ErrRESTConfigMissing))

	_, err = NewClient(Options{BaseURL: "not-a-url", APIKey: "k"})
	assert.True(t, apperrors.IsConfiguration(err))

	c, err := NewClient(Options{BaseURL: "https://x.example.co/", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "https://x.example.co", c.baseURL.String())
}

func TestTenantStoreCreate(t *testing.T) {
	principal := &auth.Principal{ID: uuid.New(), AccessToken: "user-token"}
	tenantID := uuid.New()

	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/rest/v1/tenants", req.URL.Path)
		assert.Equal(t, testAPIKey, req.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", req.Header.Get("Authorization"))
		assert.Equal(t, "return=representation", req.Header.Get("Prefer"))
		assert.Equal(t, mediaObject, req.Header.Get("Accept"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "Comunidade Vida Nova", body["name"])
		assert.Equal(t, principal.ID.String(), body["created_by"])
		_, hasID := body["id"]
		assert.False(t, hasID)

		return jsonResponse(http.StatusCreated, `{
			"id": "`+tenantID.String()+`",
			"name": "Comunidade Vida Nova",
			"created_by": "`+principal.ID.String()+`",
			"created_at": "2025-03-01T10:00:00.123456+00:00",
			"updated_at": "2025-03-01T10:00:00.123456+00:00"
		}`), nil
	})

	tenant := &models.Tenant{Name: "Comunidade Vida Nova", CreatedBy: principal.ID}
	err := NewTenantStore(c).Create(auth.WithPrincipal(context.Background(), principal), tenant)

	require.NoError(t, err)
	assert.Equal(t, tenantID, tenant.ID)
	assert.False(t, tenant.CreatedAt.IsZero())
}

func TestTenantStoreCreateSchemaCacheMiss(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Bearer "+testAPIKey, req.Header.Get("Authorization"))
		return jsonResponse(http.StatusNotFound, `{
			"code": "PGRST205",
			"details": null,
			"hint": "Perhaps you meant the table 'public.members'",
			"message": "Could not find the table 'public.tenants' in the schema cache"
		}`), nil
	})

	err := NewTenantStore(c).Create(context.Background(), &models.Tenant{Name: "x", CreatedBy: uuid.New()})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "PGRST205", apiErr.Code)
	assert.Equal(t, "Perhaps you meant the table 'public.members'", apiErr.Hint)
	assert.Equal(t, bootstrap.KindTransientSchema, bootstrap.Classify(err))
}

func TestProfileStoreCreatePermissionDenied(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, string(models.RoleSuperAdmin), body["role"])
		_, hasTenant := body["tenant"]
		assert.False(t, hasTenant)

		return jsonResponse(http.StatusForbidden, `{
			"code": "42501",
			"details": null,
			"hint": null,
			"message": "new row violates row-level security policy for table \"profiles\""
		}`), nil
	})

	profile := &models.Profile{ID: uuid.New(), TenantID: uuid.New(), FullName: "Pr. João Silva", Role: models.RoleSuperAdmin}
	err := NewProfileStore(c).Create(context.Background(), profile)

	assert.Equal(t, bootstrap.KindPermissionDenied, bootstrap.Classify(err))
}

func TestProfileStoreCreateRejectsUnknownRole(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request %s %s", req.Method, req.URL.Path)
		return nil, nil
	})

	profile := &models.Profile{ID: uuid.New(), TenantID: uuid.New(), FullName: "Pr. João Silva", Role: "pastor"}
	err := NewProfileStore(c).Create(context.Background(), profile)

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, bootstrap.KindUnknown, bootstrap.Classify(err))
}

func TestProfileStoreGetWithTenant(t *testing.T) {
	profileID, tenantID := uuid.New(), uuid.New()

	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		assert.Equal(t, "eq."+profileID.String(), q.Get("id"))
		assert.Equal(t, "*,tenant:tenants(*)", q.Get("select"))
		return jsonResponse(http.StatusOK, `{
			"id": "`+profileID.String()+`",
			"tenant_id": "`+tenantID.String()+`",
			"full_name": "Maria",
			"role": "super_admin",
			"tenant": {"id": "`+tenantID.String()+`", "name": "Igreja Central"}
		}`), nil
	})

	profile, err := NewProfileStore(c).GetWithTenant(context.Background(), profileID)

	require.NoError(t, err)
	require.NotNil(t, profile.Tenant)
	assert.Equal(t, "Igreja Central", profile.Tenant.Name)
	assert.Equal(t, models.RoleSuperAdmin, profile.Role)
}

func TestGetByIDNoRows(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotAcceptable, `{
			"code": "PGRST116",
			"details": "The result contains 0 rows",
			"hint": null,
			"message": "JSON object requested, multiple (or no) rows returned"
		}`), nil
	})

	_, err := NewProfileStore(c).GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperrors.ErrProfileNotFound))

	_, err = NewTenantStore(c).GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperrors.ErrTenantNotFound))
}

func TestProbeSchema(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		assert.Equal(t, "id,created_by", q.Get("select"))
		assert.Equal(t, "0", q.Get("limit"))
		return jsonResponse(http.StatusBadRequest, `{"code":"42703","message":"column tenants.created_by does not exist"}`), nil
	})

	err := NewTenantStore(c).ProbeSchema(context.Background())

	assert.Equal(t, bootstrap.KindTransientSchema, bootstrap.Classify(err))
}

func TestAuthProvider(t *testing.T) {
	userID := uuid.New()

	t.Run("no token in context", func(t *testing.T) {
		c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			t.Fatalf("unexpected request to %s", req.URL.Path)
			return nil, nil
		})
		p, err := NewAuthProvider(c).CurrentPrincipal(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("valid session", func(t *testing.T) {
		c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "/auth/v1/user", req.URL.Path)
			assert.Equal(t, "Bearer session-token", req.Header.Get("Authorization"))
			return jsonResponse(http.StatusOK, `{"id":"`+userID.String()+`","email":"joao@vidanova.org"}`), nil
		})
		ctx := auth.WithPrincipal(context.Background(), &auth.Principal{ID: userID, AccessToken: "session-token"})

		p, err := NewAuthProvider(c).CurrentPrincipal(ctx)

		require.NoError(t, err)
		assert.Equal(t, userID, p.ID)
		assert.Equal(t, "joao@vidanova.org", p.Email)
		assert.Equal(t, "session-token", p.AccessToken)
	})

	t.Run("expired session", func(t *testing.T) {
		c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, `{"code":401,"error_code":"bad_jwt","msg":"invalid JWT: token is expired"}`), nil
		})
		ctx := auth.WithPrincipal(context.Background(), &auth.Principal{ID: userID, AccessToken: "old"})

		p, err := NewAuthProvider(c).CurrentPrincipal(ctx)

		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("auth api down", func(t *testing.T) {
		c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadGateway, `upstream unavailable`), nil
		})
		ctx := auth.WithPrincipal(context.Background(), &auth.Principal{ID: userID, AccessToken: "t"})

		_, err := NewAuthProvider(c).CurrentPrincipal(ctx)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "upstream unavailable", apiErr.Message)
	})
}

func TestDecodeAPIErrorAuthShape(t *testing.T) {
	apiErr := decodeAPIError(http.StatusUnauthorized, []byte(`{"code":401,"error_code":"bad_jwt","msg":"invalid JWT"}`))
	assert.Equal(t, "bad_jwt", apiErr.Code)
	assert.Equal(t, "invalid JWT", apiErr.Message)

	apiErr = decodeAPIError(http.StatusInternalServerError, nil)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestPingUsesProjectKey(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/rest/v1/", req.URL.Path)
		assert.Equal(t, "Bearer "+testAPIKey, req.Header.Get("Authorization"))
		return jsonResponse(http.StatusOK, `{}`), nil
	})
	ctx := auth.WithPrincipal(context.Background(), &auth.Principal{ID: uuid.New(), AccessToken: "user"})

	assert.NoError(t, c.Ping(ctx))
}
