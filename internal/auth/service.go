package auth

import (
	"fmt"
	"time"

	apperrors "ecclesia-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService issues and validates session tokens
type AuthService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// AuthClaims represents JWT token claims. The subject is the principal ID.
type AuthClaims struct {
	Email string `json:"email,omitempty" example:"pastor@vidanova.org"`
	Role  string `json:"role,omitempty" example:"authenticated"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(secret, issuer string, ttl time.Duration) (*AuthService, error) {
	if secret == "" {
		return nil, apperrors.NewConfigurationError("JWT secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// GenerateJWT creates a signed session token for the principal
func (s *AuthService) GenerateJWT(p *Principal) (string, error) {
	if p == nil || p.ID == uuid.Nil {
		return "", fmt.Errorf("principal id is required")
	}

	now := s.now()
	claims := &AuthClaims{
		Email: p.Email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   p.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateJWT validates and parses a JWT token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidToken
}

// PrincipalFromToken validates the token and returns the principal it names
func (s *AuthService) PrincipalFromToken(tokenString string) (*Principal, error) {
	claims, err := s.ValidateJWT(tokenString)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a principal id: %w", err)
	}

	return &Principal{
		ID:          id,
		Email:       claims.Email,
		AccessToken: tokenString,
	}, nil
}
