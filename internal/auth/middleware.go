package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	service *AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(service *AuthService) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// RequireAuth validates JWT tokens and sets the principal on the request context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Extract token from Bearer header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		principal, err := m.service.PrincipalFromToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "details": err.Error()})
			c.Abort()
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a valid token is present but never
// rejects the request. The bootstrap session guard decides what to do with an
// anonymous caller.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" || tokenString == c.GetHeader("Authorization") {
			c.Next()
			return
		}

		if principal, err := m.service.PrincipalFromToken(tokenString); err == nil {
			setPrincipal(c, principal)
		}
		c.Next()
	}
}

func setPrincipal(c *gin.Context, p *Principal) {
	c.Set("user_id", p.ID.String())
	c.Set("email", p.Email)
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
}

// GetPrincipal is a helper function to extract the principal from a gin context
func GetPrincipal(c *gin.Context) (*Principal, bool) {
	return PrincipalFromContext(c.Request.Context())
}
