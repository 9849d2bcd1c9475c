package handler

import (
	"net/http"

	"github.com/cards10e/laquiniela247/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeForbidden          = apierr.CodeForbidden
	CodeUserNotFound       = apierr.CodeUserNotFound
	CodeWeekNotFound       = apierr.CodeWeekNotFound
	CodeWeekExists         = apierr.CodeWeekExists
	CodeGameNotFound       = apierr.CodeGameNotFound
	CodeBetNotFound        = apierr.CodeBetNotFound
	CodeBetExists          = apierr.CodeBetExists
	CodeInvalidPrediction  = apierr.CodeInvalidPrediction
	CodeEmptyCriteria      = apierr.CodeEmptyCriteria
	CodeEmailExists        = apierr.CodeEmailExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
