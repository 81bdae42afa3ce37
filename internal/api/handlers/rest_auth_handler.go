package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ren89/property-listing-app/internal/api/middleware"
	"github.com/ren89/property-listing-app/internal/session"
	"github.com/ren89/property-listing-app/internal/validation"
)

// RestAuthHandler handles sign-up, sign-in and sign-out.
type RestAuthHandler struct {
	sessions        session.IStore
	cookieMaxAgeSec int
}

// NewRestAuthHandler creates a new RestAuthHandler. cookieMaxAgeSec bounds
// the browser session cookie and should match the session TTL.
func NewRestAuthHandler(sessions session.IStore, cookieMaxAgeSec int) *RestAuthHandler {
	return &RestAuthHandler{sessions: sessions, cookieMaxAgeSec: cookieMaxAgeSec}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /auth/signup
func (h *RestAuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if result := validation.ValidateSignupForm(req.Name, req.Email, req.Password); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"errors": result.Errors})
		return
	}

	user, token, err := h.sessions.SignUp(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, session.ErrAccountExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"data": user, "token": token})
}

// SignIn handles POST /auth/signin
func (h *RestAuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if result := validation.ValidateLoginForm(req.Email, req.Password); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"errors": result.Errors})
		return
	}

	user, token, err := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"data": user, "token": token})
}

// SignOut handles POST /auth/signout
func (h *RestAuthHandler) SignOut(c *gin.Context) {
	token := ""
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		token = cookie
	}
	if header := c.GetHeader("Authorization"); token == "" && len(header) > 7 {
		token = header[7:] // strip "Bearer "
	}

	if token != "" {
		if err := h.sessions.SignOut(c.Request.Context(), token); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
			return
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RestAuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, h.cookieMaxAgeSec, "/", "", false, true)
}

func (h *RestAuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}
