package application

import (
	"errors"
	"fmt"
	"net/http"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeRequestInProgress   = "REQUEST_IN_PROGRESS"
	ErrCodeIdempotencyMismatch = "IDEMPOTENCY_MISMATCH"
	ErrCodeTimeout             = "TIMEOUT"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeRouteNotFound       = "NOT_FOUND"
)

func NewRequestInProgressError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeRequestInProgress,
		Message:    "A request with this idempotency key is still being processed",
		HTTPStatus: http.StatusConflict,
	}
}

func NewIdempotencyMismatchError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeIdempotencyMismatch,
		Message:    "Idempotency key reused with different request parameters",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func NewTimeoutError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeTimeout,
		Message:    "Request timed out waiting for completion",
		HTTPStatus: http.StatusRequestTimeout,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewValidationError wraps request-shape failures caught before any service runs.
func NewValidationError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeValidation,
		Message:    "Request validation failed",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}
