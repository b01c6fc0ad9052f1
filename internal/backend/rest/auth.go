package rest

import (
	"context"
	"net/http"

	"ecclesia-backend/internal/auth"

	"github.com/google/uuid"
)

// AuthProvider resolves the current principal by asking the hosted auth API
// who owns the bearer token carried in the request context.
type AuthProvider struct {
	client *Client
}

// NewAuthProvider creates a new auth provider
func NewAuthProvider(client *Client) *AuthProvider {
	return &AuthProvider{client: client}
}

type authUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// CurrentPrincipal returns nil, nil when the context has no token or the
// auth API no longer recognises it.
func (a *AuthProvider) CurrentPrincipal(ctx context.Context) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok || p.AccessToken == "" {
		return nil, nil
	}

	var user authUser
	err := a.client.do(ctx, request{method: http.MethodGet, path: "/auth/v1/user", bearer: p.AccessToken}, &user)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
			return nil, nil
		}
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, nil
	}

	return &auth.Principal{ID: user.ID, Email: user.Email, AccessToken: p.AccessToken}, nil
}
