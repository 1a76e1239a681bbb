package errors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidConfiguration = "INVALID_CONFIGURATION"
	ErrCodeInvalidEndpoint      = "INVALID_ENDPOINT"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeInvalidToken         = "INVALID_TOKEN"
	ErrCodeNotABotToken         = "NOT_A_BOT_TOKEN"
	ErrCodeNoActiveGame         = "NO_ACTIVE_GAME"
	ErrCodeAPIError             = "API_ERROR"
	ErrCodeInternal             = "INTERNAL_ERROR"
)

// AppError represents an application error with an error code and,
// for errors derived from an API response, the HTTP status observed.
type AppError struct {
	Code    string // Error code (e.g., "RATE_LIMITED", "NOT_FOUND")
	Message string // Human-readable error message
	Status  int    // HTTP status code of the response, 0 for local errors
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// CodeOf returns the error code of err, or the empty string when err is
// not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}

// IsRateLimited reports whether err signals an HTTP 429. Callers own
// the backoff policy; the client never retries on its own.
func IsRateLimited(err error) bool {
	return HasCode(err, ErrCodeRateLimited)
}

// IsNotFound reports whether err signals an HTTP 404.
func IsNotFound(err error) bool {
	return HasCode(err, ErrCodeNotFound)
}

// NewInvalidConfigurationError creates an INVALID_CONFIGURATION error
// for a bad constructor argument. These never reach the network.
func NewInvalidConfigurationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidConfiguration,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
	}
}

// NewInvalidEndpointError creates an INVALID_ENDPOINT error for a
// malformed base URL.
func NewInvalidEndpointError(endpoint string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidEndpoint,
		Message: fmt.Sprintf("endpoint %q: %s", endpoint, reason),
	}
}

// NewRateLimitedError creates a RATE_LIMITED error (HTTP 429).
func NewRateLimitedError() *AppError {
	return &AppError{
		Code:    ErrCodeRateLimited,
		Message: "rate limited by the server",
		Status:  429,
	}
}

// NewNotFoundError creates a NOT_FOUND error (HTTP 404).
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewBadRequestError creates a BAD_REQUEST error carrying the
// server-supplied rejection reason (HTTP 400).
func NewBadRequestError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: reason,
		Status:  400,
	}
}

// NewInvalidTokenError creates an INVALID_TOKEN error. Not retryable
// without new credentials.
func NewInvalidTokenError(status int) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidToken,
		Message: "token rejected by the server",
		Status:  status,
	}
}

// NewNotABotTokenError creates a NOT_A_BOT_TOKEN error for a token
// that could not be upgraded to a bot account.
func NewNotABotTokenError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeNotABotToken,
		Message: "token does not belong to an upgradable bot account",
		Err:     err,
	}
}

// NewNoActiveGameError creates a NO_ACTIVE_GAME error for an account
// with no game in progress.
func NewNoActiveGameError() *AppError {
	return &AppError{
		Code:    ErrCodeNoActiveGame,
		Message: "account has no game in progress",
	}
}

// NewInternalError creates an INTERNAL_ERROR wrapping a local fault,
// e.g. a failed database write.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// NewAPIError creates an API_ERROR for an unclassified non-2xx
// response that carried a server-provided error message.
func NewAPIError(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeAPIError,
		Message: message,
		Status:  status,
	}
}
