package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ren89/property-listing-app/internal/models"
)

const (
	// ContextKeyUser holds the key for the resolved user profile in Gin context.
	ContextKeyUser = "user"
	// ContextKeyRole holds the key for the session role in Gin context.
	ContextKeyRole = "role"
)

// SessionValidator resolves a bearer token to a profile and role.
type SessionValidator interface {
	Current(ctx context.Context, token string) (*models.User, string, error)
}

// AuthMiddleware creates a Gin middleware that authenticates requests
// against the session store. The token comes from the Authorization header
// or, for browser navigation, the session cookie.
func AuthMiddleware(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, role, err := sessions.Current(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyRole, role)

		c.Next()
	}
}

// RequireRole creates a Gin middleware that restricts a route to the given
// roles. Assumes AuthMiddleware runs first.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient privileges"})
	}
}

// CurrentUser returns the profile set by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextKeyUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// bearerToken extracts the session token from the Authorization header,
// falling back to the session cookie for browser requests.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}
