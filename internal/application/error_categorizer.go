package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/claimpay/internal/domain"
)

// ErrorCategory represents the nature of an error for logging and metrics
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines error category for logging and metric labels
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if domainErr, ok := domain.AsDomainError(err); ok {
		switch domainErr.Code {
		case domain.ErrCodeClaimNotApproved,
			domain.ErrCodeDuplicateTransactionReference,
			domain.ErrCodePaymentExceedsClaimAmount,
			domain.ErrCodeIllegalStateTransition:
			return CategoryBusinessRule
		default:
			return CategoryClientError
		}
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeValidation, ErrCodeIdempotencyMismatch, ErrCodeRouteNotFound:
			return CategoryClientError
		case ErrCodeRequestInProgress, ErrCodeTimeout:
			return CategoryTransient
		}
	}

	return CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	if domainErr, ok := domain.AsDomainError(err); ok {
		switch domainErr.Code {
		case domain.ErrCodeClaimNotFound, domain.ErrCodePaymentNotFound:
			return http.StatusNotFound
		case domain.ErrCodeClaimNotApproved,
			domain.ErrCodeDuplicateTransactionReference,
			domain.ErrCodeIllegalStateTransition:
			return http.StatusConflict
		default:
			return http.StatusBadRequest
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode gives the stable machine-readable code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	if domainErr, ok := domain.AsDomainError(err); ok {
		return domainErr.Code
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrCodeTimeout
	}

	return ErrCodeInternal
}
