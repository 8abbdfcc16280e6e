package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/services"
)

// AuthMiddleware guards routes with JWT authentication
type AuthMiddleware struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthMiddleware(auth *services.AuthService, users *services.UserService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, users: users}
}

// AuthRequired rejects requests without a valid bearer token. The token's
// subject must still exist; role comes from the user record, not the token,
// so role changes take effect without reissuing tokens.
func (m *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := m.auth.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := m.users.GetByID(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "account no longer exists")
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", string(user.Role))
		c.Set("userEmail", user.Email)
		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present but lets
// anonymous requests through.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.auth.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		if user, err := m.users.GetByID(claims.UserID); err == nil {
			c.Set("userID", user.ID)
			c.Set("userRole", string(user.Role))
			c.Set("userEmail", user.Email)
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles past. Must run after AuthRequired.
func (m *AuthMiddleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   apperr.Forbidden("insufficient permissions").Error(),
		})
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   message,
	})
}
