package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ren89/property-listing-app/internal/api/middleware"
)

// RestUserHandler serves the authenticated user's own profile.
type RestUserHandler struct{}

// NewRestUserHandler creates a new RestUserHandler.
func NewRestUserHandler() *RestUserHandler {
	return &RestUserHandler{}
}

// GetMe handles GET /v1/me
func (h *RestUserHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": user,
		"role": c.GetString(middleware.ContextKeyRole),
	})
}
