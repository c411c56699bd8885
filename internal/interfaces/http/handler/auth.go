package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/mandi/backend/internal/application/identity"
	"github.com/mandi/backend/internal/interfaces/http/middleware"
)

// AuthHandler exposes account registration, login and profile endpoints
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	jwtAuth     gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler. jwtAuth guards the endpoints
// that require an authenticated session.
func NewAuthHandler(authService *appidentity.AuthService, jwtAuth gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtAuth:     jwtAuth,
	}
}

// RegisterRoutes registers auth routes on the API group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)

		auth.POST("/logout", h.jwtAuth, h.Logout)
		auth.GET("/profile", h.jwtAuth, h.Profile)
		auth.PUT("/profile", h.jwtAuth, h.UpdateProfile)
		auth.PUT("/password", h.jwtAuth, h.ChangePassword)
	}
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, user)
}

// Login authenticates an account and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh exchanges a refresh token for a fresh token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, result)
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Profile returns the authenticated account
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateProfile updates company details on the authenticated account
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword rotates the password and invalidates existing sessions
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

func currentUserID(c *gin.Context) (uuid.UUID, error) {
	idStr := middleware.GetJWTUserID(c)
	if idStr == "" {
		return uuid.Nil, errors.New("user not found in context")
	}
	return uuid.Parse(idStr)
}
