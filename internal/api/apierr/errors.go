package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sgs-events/eventdesk/internal/model"
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
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeNotRegistered        = "NOT_REGISTERED"
	CodeWrongCode            = "WRONG_CODE"
	CodeNoPendingCode        = "NO_PENDING_CODE"
	CodeTooManyAttempts      = "TOO_MANY_ATTEMPTS"
	CodeWrongAdminPassword   = "WRONG_ADMIN_PASSWORD"
	CodeAdminRequired        = "ADMIN_REQUIRED"
	CodeStoreUnavailable     = "STORE_UNAVAILABLE"
	CodeStoreCorrupt         = "STORE_CORRUPT"
	CodeAllowListUnavailable = "ALLOWLIST_UNAVAILABLE"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternalError        = "INTERNAL_ERROR"
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
	case errors.Is(err, model.ErrNotRegistered):
		return &httpError{http.StatusForbidden, APIError{CodeNotRegistered, "This number is not registered"}}
	case errors.Is(err, model.ErrWrongCode):
		return &httpError{http.StatusUnauthorized, APIError{CodeWrongCode, "Wrong code"}}
	case errors.Is(err, model.ErrNoPendingCode):
		return &httpError{http.StatusConflict, APIError{CodeNoPendingCode, "No code pending for this session"}}
	case errors.Is(err, model.ErrTooManyAttempts):
		return &httpError{http.StatusTooManyRequests, APIError{CodeTooManyAttempts, "Too many failed attempts, try again later"}}
	case errors.Is(err, model.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, model.ErrUnauthenticated):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Login required"}}
	case errors.Is(err, model.ErrWrongAdminPassword):
		return &httpError{http.StatusUnauthorized, APIError{CodeWrongAdminPassword, "Incorrect password"}}
	case errors.Is(err, model.ErrAdminRequired):
		return &httpError{http.StatusForbidden, APIError{CodeAdminRequired, "Admin authorization required"}}
	case errors.Is(err, model.ErrStoreUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreUnavailable, "Record store is unavailable"}}
	case errors.Is(err, model.ErrStoreCorrupt):
		return &httpError{http.StatusInternalServerError, APIError{CodeStoreCorrupt, "Record store contents are malformed"}}
	case errors.Is(err, model.ErrAllowListUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeAllowListUnavailable, "Allow-list is unavailable"}}

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

// NewRateLimitedError creates a rate limited error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many requests"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
