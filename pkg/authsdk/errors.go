package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/httpx"
)

// Error codes shared by the server responses and the SDK client.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeExpiredToken       = "expired_token"
	ErrorCodeAccountDisabled    = "account_disabled"
	ErrorCodeUsernameTaken      = "username_taken"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeServerError        = "server_error"
)

// APIError is the error envelope every endpoint returns. It implements the
// error interface so the SDK client can surface it directly.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// Predefined errors for the common failure modes.
var (
	ErrInvalidRequestBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "The request body could not be parsed.",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "The username or password is incorrect.",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "The provided token is invalid or has been revoked.",
	}

	ErrExpiredToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeExpiredToken,
		Description: "The provided token has expired.",
	}

	ErrAccountDisabled = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccountDisabled,
		Description: "This account has been disabled.",
	}

	ErrUsernameTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeUsernameTaken,
		Description: "That username is already registered.",
	}

	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "That email address is already registered.",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "An unexpected error occurred.",
	}
)

// InvalidRequest returns an invalid_request error with a specific description.
func InvalidRequest(desc string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: desc,
	}
}
