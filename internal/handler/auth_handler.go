package handler

import (
	"errors"
	"net/http"

	"github.com/campuskit/admin-backend/internal/middleware"
	"github.com/campuskit/admin-backend/internal/model"
	"github.com/campuskit/admin-backend/internal/response"
	"github.com/campuskit/admin-backend/internal/service"
	"github.com/campuskit/admin-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout, and the current-identity endpoint.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /api/v1/user/login
// Verifies credentials and binds the account into the session. Unknown
// username and wrong password produce the same error code.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	account, err := h.authService.Login(c.Request.Context(), middleware.GetSessionID(c), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, account)
}

// Logout godoc
// GET /api/v1/user/logout
// Unbinds the session's principal.
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.authService.Logout(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			response.Fail(c, http.StatusUnauthorized, response.ErrNotAuthenticated)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// Me godoc
// GET /api/v1/user/me
// Returns the current acting identity, anonymous included.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, err := h.authService.CurrentPrincipal(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"anonymous":   principal.Anonymous(),
		"username":    principal.Username,
		"permissions": principal.Permissions,
	})
}
