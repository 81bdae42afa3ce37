package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ren89/property-listing-app/internal/models"
)

// SessionCookieName is the cookie browser sessions ride on.
const SessionCookieName = "pla_session"

// routeAccess maps page path prefixes to the roles allowed to view them.
// An empty slice means public.
var routeAccess = map[string][]string{
	"/":         {},
	"/property": {models.RoleUser, models.RoleAdmin},
	"/admin":    {models.RoleAdmin},
}

// PageGuard enforces the page access table for browser navigation.
// Requests that fail the check are redirected to the home page rather
// than answered with a JSON error.
func PageGuard(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, guarded := rolesFor(c.Request.URL.Path)
		if !guarded || len(allowed) == 0 {
			c.Next()
			return
		}

		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			redirectHome(c)
			return
		}

		user, role, err := sessions.Current(c.Request.Context(), token)
		if err != nil {
			redirectHome(c)
			return
		}

		for _, r := range allowed {
			if role == r {
				c.Set(ContextKeyUser, user)
				c.Set(ContextKeyRole, role)
				c.Next()
				return
			}
		}
		redirectHome(c)
	}
}

// rolesFor resolves a request path against the access table by longest
// matching prefix. The second return reports whether the path is covered
// by the table at all.
func rolesFor(path string) ([]string, bool) {
	best := ""
	var roles []string
	found := false
	for prefix, allowed := range routeAccess {
		if prefix == "/" {
			if path == "/" && best == "" {
				roles, found = allowed, true
			}
			continue
		}
		if (path == prefix || strings.HasPrefix(path, prefix+"/")) && len(prefix) > len(best) {
			best = prefix
			roles, found = allowed, true
		}
	}
	return roles, found
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
	c.Abort()
}
