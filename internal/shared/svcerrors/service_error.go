package svcerrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	categoryInvalidArgument = "invalid_argument"
	categoryAlreadyComputed = "already_computed"
	categoryNotFound        = "not_found"
	categoryRateLimited     = "rate_limited"
	categoryInternal        = "internal"
)

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"
)

// NewInvalidArgumentError creates a new ServiceError with category invalid_argument.
func NewInvalidArgumentError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInvalidArgument,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusBadRequest,
	}
}

// NewInternalError creates a new ServiceError with category internal.
func NewInternalError(code string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInternal,
		Code:           code,
		Message:        "internal server error",
		Cause:          cause,
		HttpStatusCode: http.StatusInternalServerError,
	}
}

// NewInternalErrorUndefined creates a new ServiceError with category internal and code SYS_9001.
func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

// NewAlreadyComputedError creates a new ServiceError with category already_computed.
// It maps to 205 Reset Content, which carries no body.
func NewAlreadyComputedError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryAlreadyComputed,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusResetContent,
	}
}

// NewNotFoundError creates a new ServiceError with category not_found.
func NewNotFoundError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryNotFound,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusNotFound,
	}
}

// NewRateLimitedError creates a new ServiceError with category rate_limited.
func NewRateLimitedError(code, message string) *ServiceError {
	return &ServiceError{
		Category:       categoryRateLimited,
		Code:           code,
		Message:        message,
		HttpStatusCode: http.StatusTooManyRequests,
	}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// ServiceError represents a service-level error with category, code, message, and cause.
// It implements the error interface and supports error wrapping.
type ServiceError struct {
	Category       string // invalid_argument, already_computed, not_found, rate_limited or internal
	Code           string // service-owned stable code (e.g. AGG_1000)
	Message        string // client-safe, human-readable
	Cause          error  // wrapped underlying error
	HttpStatusCode int    // HTTP status code
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error to support errors.Is and errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}

func (e *ServiceError) IsAlreadyComputed() bool {
	return e.Category == categoryAlreadyComputed
}

// HasBody reports whether the HTTP status allows a response body.
func (e *ServiceError) HasBody() bool {
	return e.HttpStatusCode != http.StatusResetContent && e.HttpStatusCode != http.StatusNoContent
}
