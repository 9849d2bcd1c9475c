package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/services/auth"
	"github.com/cards10e/laquiniela247/internal/services/maintenance"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeWeekNotFound       = "WEEK_NOT_FOUND"
	CodeWeekExists         = "WEEK_EXISTS"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeBetNotFound        = "BET_NOT_FOUND"
	CodeBetExists          = "BET_EXISTS"
	CodeInvalidPrediction  = "INVALID_PREDICTION"
	CodeEmptyCriteria      = "EMPTY_CRITERIA"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrWeekNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeWeekNotFound, "Week not found"}}
	case errors.Is(err, model.ErrWeekExists):
		return &httpError{http.StatusConflict, APIError{CodeWeekExists, "Week already exists"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrBetNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBetNotFound, "Bet not found"}}
	case errors.Is(err, model.ErrBetExists):
		return &httpError{http.StatusConflict, APIError{CodeBetExists, "A bet is already placed on this game"}}
	case errors.Is(err, model.ErrInvalidPrediction):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPrediction, "Prediction must be home, draw or away"}}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}

	// Map maintenance errors
	case errors.Is(err, maintenance.ErrEmptyCriteria):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyCriteria, "Purge criteria must not be empty"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
