package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/localtime"
	"cms/internal/model"
)

// Context keys set by the router's current-user middleware.
const (
	ContextUserKey = "currentUser"
	ContextJTIKey  = "accessJTI"
)

// Every response body carries the status code alongside a success payload, a
// message, or an error, and the HTTP status mirrors the embedded one.

func respondSuccess(c echo.Context, status int, success interface{}, message string) error {
	body := echo.Map{"status": status}
	if success != nil {
		body["success"] = success
	}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(status, body)
}

func respondError(c echo.Context, status int, message interface{}) error {
	return c.JSON(status, echo.Map{
		"status": status,
		"error":  message,
	})
}

// respondDomainError maps a service error onto the wire contract.
func respondDomainError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return respondError(c, httpErr.StatusCode, httpErr.Message)
}

// currentUser pulls the authenticated user loaded by the router middleware.
func currentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok && user != nil
}

func accessJTI(c echo.Context) string {
	jti, _ := c.Get(ContextJTIKey).(string)
	return jti
}

// unauthenticated is the shared 400 response for a missing bearer identity.
func unauthenticated(c echo.Context) error {
	return respondError(c, http.StatusBadRequest, errors.ErrTokenNotProvided.Error())
}

// RoleResponse is the expanded role reference in user payloads.
type RoleResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserResponse is the serialized user profile with localized timestamps.
type UserResponse struct {
	ID          uint                `json:"id"`
	FullName    string              `json:"full_name"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Address     string              `json:"address"`
	City        string              `json:"city"`
	State       string              `json:"state"`
	Country     string              `json:"country"`
	Pincode     string              `json:"pincode"`
	IsActive    bool                `json:"is_active"`
	IsAuthor    bool                `json:"is_auther"`
	IsSuperuser bool                `json:"is_superuser"`
	Role        RoleResponse        `json:"role"`
	CreatedAt   localtime.Breakdown `json:"created_at"`
	UpdatedAt   localtime.Breakdown `json:"updated_at"`
}

func newUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		Phone:       user.Phone,
		Address:     user.Address,
		City:        user.City,
		State:       user.State,
		Country:     user.Country,
		Pincode:     user.Pincode,
		IsActive:    user.IsActive,
		IsAuthor:    user.IsAuthor,
		IsSuperuser: user.IsSuperuser,
		Role:        RoleResponse{ID: user.Role.ID, Name: user.Role.Name},
		CreatedAt:   localtime.InIST(user.CreatedAt, true),
		UpdatedAt:   localtime.InIST(user.UpdatedAt, true),
	}
}

// ContentResponse is the serialized content item with localized timestamps.
type ContentResponse struct {
	ID         uint                `json:"id"`
	Title      string              `json:"title"`
	Body       string              `json:"body"`
	Summary    string              `json:"summary"`
	PDFFile    string              `json:"pdf_file"`
	Categories string              `json:"categories"`
	CreatedAt  localtime.Breakdown `json:"created_at"`
	UpdatedAt  localtime.Breakdown `json:"updated_at"`
}

func newContentResponse(item *model.ContentItem) ContentResponse {
	return ContentResponse{
		ID:         item.ID,
		Title:      item.Title,
		Body:       item.Body,
		Summary:    item.Summary,
		PDFFile:    item.PDFFile,
		Categories: item.Categories,
		CreatedAt:  localtime.InIST(item.CreatedAt, true),
		UpdatedAt:  localtime.InIST(item.UpdatedAt, true),
	}
}

func newContentResponses(items []model.ContentItem) []ContentResponse {
	out := make([]ContentResponse, 0, len(items))
	for i := range items {
		out = append(out, newContentResponse(&items[i]))
	}
	return out
}
