// Package apierr maps domain errors to JSON API error responses.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lmehner/blockworld/internal/model"
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
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeDuplicateCommand = "DUPLICATE_COMMAND"
	CodeRemoteFailure    = "REMOTE_FAILURE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

func (e *httpError) Error() string {
	return e.apiError.Message
}

// NewInvalidRequestError creates a bad request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// WriteError writes an error as a JSON response, mapping domain errors
// to appropriate status codes
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	apiError := APIError{Code: CodeInternalError, Message: err.Error()}

	var httpErr *httpError
	switch {
	case errors.As(err, &httpErr):
		status = httpErr.status
		apiError = httpErr.apiError
	case errors.Is(err, model.ErrDuplicateCommand):
		status = http.StatusConflict
		apiError = APIError{Code: CodeDuplicateCommand, Message: err.Error()}
	default:
		// Everything else reaching this layer is a remote API failure;
		// the upstream server is unreachable or rejected the operation
		status = http.StatusBadGateway
		apiError = APIError{Code: CodeRemoteFailure, Message: err.Error()}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: apiError})
}
