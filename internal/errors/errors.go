package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrTokenNotProvided is returned when the caller carries no usable bearer identity.
	// The public contract reports this as 400, not 401.
	ErrTokenNotProvided = errors.New("Token not provided.")
	// ErrContentNotFound is returned when the referenced content item does not exist.
	ErrContentNotFound = errors.New("No content with given content id.")
	// ErrContentForbidden is returned when the object-level policy rejects the caller.
	ErrContentForbidden = errors.New("You do not have permission to access this content.")
	// ErrPermissionDenied is returned when the collection-level policy rejects the caller.
	ErrPermissionDenied = errors.New("You do not have permission to perform this action.")
	// ErrInvalidPage is returned when a page slice is empty but the collection is not.
	ErrInvalidPage = errors.New("Invalid page number")
	// ErrNoOutstandingTokens is returned at logout when the user has no refresh tokens left.
	ErrNoOutstandingTokens = errors.New("Refresh token not found.")
	// ErrInvalidRefreshToken is returned when a refresh token is malformed, expired or blacklisted.
	ErrInvalidRefreshToken = errors.New("Invalid refresh token.")
	// ErrPasswordMismatch is returned when the current password does not verify.
	ErrPasswordMismatch = errors.New("Current password didn't match")
	// ErrSamePassword is returned when the new password equals the current one.
	ErrSamePassword = errors.New("New password can't be same as current password")
	// ErrMissingPasswordFields is returned when a change-password field is absent.
	ErrMissingPasswordFields = errors.New("Missing field current_password or new_password")
)

// ValidationError aggregates every violated field rule, not just the first.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidation builds a ValidationError from one or more rule messages.
func NewValidation(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// HTTPError represents an HTTP error with status code and a message payload,
// which is either a string or a list of validation messages.
type HTTPError struct {
	StatusCode int
	Message    interface{}
}

func (e *HTTPError) Error() string {
	if s, ok := e.Message.(string); ok {
		return s
	}
	if msgs, ok := e.Message.([]string); ok {
		return strings.Join(msgs, "; ")
	}
	return "error"
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message interface{}) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. The service deliberately
// signals client-caused failures, missing credentials included, with 400; only
// the authorization policy surfaces 403.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return NewHTTPError(http.StatusBadRequest, verr.Messages)
	}

	switch {
	case errors.Is(err, ErrContentForbidden), errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrTokenNotProvided),
		errors.Is(err, ErrContentNotFound),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrNoOutstandingTokens),
		errors.Is(err, ErrInvalidRefreshToken),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrSamePassword),
		errors.Is(err, ErrMissingPasswordFields):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		// Unhandled: the raw error string goes out with a 500, mirroring the
		// historical catch-all contract.
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
