package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	service, err := NewAuthService("test-signing-key-for-jwt-operations", "ecclesia-test", time.Hour)
	require.NoError(t, err)
	return service
}

func TestNewAuthService(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		_, err := NewAuthService("", "", time.Hour)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
	})

	t.Run("non-positive ttl falls back to one hour", func(t *testing.T) {
		service, err := NewAuthService("secret", "", 0)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, service.ttl)
	})
}

func TestJWTOperations(t *testing.T) {
	service := newTestService(t)
	principal := &Principal{ID: uuid.New(), Email: "pastor@vidanova.org"}

	// Test token generation
	token, err := service.GenerateJWT(principal)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Test token validation
	claims, err := service.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, principal.ID.String(), claims.Subject)
	assert.Equal(t, principal.Email, claims.Email)
	assert.Equal(t, "ecclesia-test", claims.Issuer)

	// Principal round trip keeps the raw token for downstream stores
	parsed, err := service.PrincipalFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, parsed.ID)
	assert.Equal(t, token, parsed.AccessToken)

	// Test invalid token
	_, err = service.ValidateJWT("invalid-token")
	assert.Error(t, err)
}

func TestGenerateJWTRequiresPrincipal(t *testing.T) {
	service := newTestService(t)

	_, err := service.GenerateJWT(nil)
	assert.Error(t, err)

	_, err = service.GenerateJWT(&Principal{})
	assert.Error(t, err)
}

func TestJWTExpiration(t *testing.T) {
	service := newTestService(t)
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issuedAt }

	token, err := service.GenerateJWT(&Principal{ID: uuid.New()})
	require.NoError(t, err)

	// Still valid just before expiry
	service.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = service.ValidateJWT(token)
	assert.NoError(t, err)

	// Rejected after expiry
	service.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = service.ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsForeignTokens(t *testing.T) {
	service := newTestService(t)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewAuthService("another-secret", "ecclesia-test", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateJWT(&Principal{ID: uuid.New()})
		require.NoError(t, err)

		_, err = service.ValidateJWT(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewAuthService("test-signing-key-for-jwt-operations", "someone-else", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateJWT(&Principal{ID: uuid.New()})
		require.NoError(t, err)

		_, err = service.ValidateJWT(token)
		assert.Error(t, err)
	})

	t.Run("subject is not a uuid", func(t *testing.T) {
		claims := &AuthClaims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "12345",
			Issuer:    "ecclesia-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key-for-jwt-operations"))
		require.NoError(t, err)

		_, err = service.PrincipalFromToken(token)
		assert.Error(t, err)
	})
}

func TestContextProvider(t *testing.T) {
	provider := NewContextProvider()

	p, err := provider.CurrentPrincipal(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, p)

	want := &Principal{ID: uuid.New()}
	p, err = provider.CurrentPrincipal(WithPrincipal(context.Background(), want))
	assert.NoError(t, err)
	assert.Equal(t, want, p)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := newTestService(t)
	middleware := NewAuthMiddleware(service)

	router := gin.New()
	router.GET("/required", middleware.RequireAuth(), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": p.ID.String(), "user_id": c.GetString("user_id")})
	})
	router.GET("/optional", middleware.OptionalAuth(), func(c *gin.Context) {
		_, ok := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	principal := &Principal{ID: uuid.New(), Email: "pastor@vidanova.org"}
	token, err := service.GenerateJWT(principal)
	require.NoError(t, err)

	do := func(path, header string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder
	}

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("/required", "").Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("/required", "Token "+token).Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("/required", "Bearer nope").Code)
	})

	t.Run("valid token", func(t *testing.T) {
		recorder := do("/required", "Bearer "+token)
		require.Equal(t, http.StatusOK, recorder.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, principal.ID.String(), body["id"])
		assert.Equal(t, principal.ID.String(), body["user_id"])
	})

	t.Run("optional without token", func(t *testing.T) {
		recorder := do("/optional", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"authenticated":false}`, recorder.Body.String())
	})

	t.Run("optional with token", func(t *testing.T) {
		recorder := do("/optional", "Bearer "+token)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"authenticated":true}`, recorder.Body.String())
	})
}
