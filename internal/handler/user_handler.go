package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"cms/internal/service"
)

// UserHandler handles registration and uniqueness probe endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Pincode accepts both a JSON number and a string; clients send either form.
type Pincode string

// UnmarshalJSON keeps the textual value of a number, string or null token.
func (p *Pincode) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if bytes.Equal(data, []byte("null")) {
		data = nil
	}
	*p = Pincode(data)
	return nil
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FullName        string  `json:"full_name" form:"full_name"`
	Email           string  `json:"email" form:"email"`
	Phone           string  `json:"phone" form:"phone"`
	Address         string  `json:"address" form:"address"`
	City            string  `json:"city" form:"city"`
	State           string  `json:"state" form:"state"`
	Country         string  `json:"country" form:"country"`
	Pincode         Pincode `json:"pincode" form:"pincode"`
	Password        string  `json:"password" form:"password"`
	ConfirmPassword string  `json:"confirm_password" form:"confirm_password"`
	Role            string  `json:"role" form:"role"`
}

// VerifyEmailRequest represents an email uniqueness probe.
type VerifyEmailRequest struct {
	Email string `json:"email" form:"email"`
}

// VerifyPhoneRequest represents a mobile number uniqueness probe.
type VerifyPhoneRequest struct {
	Phone string `json:"phone" form:"phone"`
}

// Register godoc
// @Summary Register a new author account
// @Tags registration
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /registration/ [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.Register(c.Request().Context(), service.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
		Pincode:         string(req.Pincode),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return respondSuccess(c, http.StatusCreated, newUserResponse(user), "User registration done")
}

// VerifyEmail godoc
// @Summary Check whether an email is unique
// @Tags registration
// @Accept json
// @Produce json
// @Param request body VerifyEmailRequest true "Email to probe"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /registration/verify-email/ [post]
func (h *UserHandler) VerifyEmail(c echo.Context) error {
	var req VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return respondError(c, http.StatusBadRequest, "email not provided")
	}

	taken, err := h.userService.IsEmailTaken(c.Request().Context(), req.Email)
	if err != nil {
		return respondDomainError(c, err)
	}
	if taken {
		return respondError(c, http.StatusBadRequest, "Email already exists")
	}
	return respondSuccess(c, http.StatusOK, nil, "Email is unique")
}

// VerifyMobileNumber godoc
// @Summary Check whether a mobile number is unique
// @Tags registration
// @Accept json
// @Produce json
// @Param request body VerifyPhoneRequest true "Mobile number to probe"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /registration/verify-mobile-number/ [post]
func (h *UserHandler) VerifyMobileNumber(c echo.Context) error {
	var req VerifyPhoneRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Phone == "" {
		return respondError(c, http.StatusBadRequest, "Mobile number not provided")
	}

	taken, err := h.userService.IsPhoneTaken(c.Request().Context(), req.Phone)
	if err != nil {
		return respondDomainError(c, err)
	}
	if taken {
		return respondError(c, http.StatusBadRequest, "Mobile_number already exists")
	}
	return respondSuccess(c, http.StatusOK, nil, "Mobile_number is unique")
}
