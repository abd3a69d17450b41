package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh" validate:"required"`
}

// ChangePasswordRequest represents a change-password request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

// Login godoc
// @Summary Authenticate and issue an access/refresh token pair
// @Tags authenticate
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /authenticate/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, pair, "Login successfully")
}

// Me godoc
// @Summary Fetch the authenticated user's profile
// @Tags authenticate
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /authenticate/ [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, newUserResponse(profile), "User details fetched successfully")
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags authenticate
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /authenticate/refresh/ [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	access, err := h.authService.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"access": access}, "Token refreshed")
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags authenticate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /authenticate/change-password/ [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.userService.ChangePassword(c.Request().Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		return respondDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, nil, "Password updated successfully")
}

// Logout godoc
// @Summary Blacklist every outstanding refresh token and end the session
// @Tags authenticate
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /authenticate/logout/ [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.authService.Logout(c.Request().Context(), user, accessJTI(c)); err != nil {
		return respondDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, nil, "Logout successful.")
}
