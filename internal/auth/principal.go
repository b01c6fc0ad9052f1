package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated actor behind a request
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
	// AccessToken is the bearer token the principal presented. Stores that act
	// on the principal's behalf forward it so row-level policies apply.
	AccessToken string `json:"-"`
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal, if any
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// ContextProvider resolves the current principal from the request context
// populated by the auth middleware. It never errors: a missing principal is
// reported as nil.
type ContextProvider struct{}

// NewContextProvider creates a new context-backed principal provider
func NewContextProvider() *ContextProvider {
	return &ContextProvider{}
}

// CurrentPrincipal returns the principal attached to ctx or nil
func (ContextProvider) CurrentPrincipal(ctx context.Context) (*Principal, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return nil, nil
	}
	return p, nil
}
