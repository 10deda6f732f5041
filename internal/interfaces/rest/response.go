package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DanielPopoola/claimpay/internal/api"
	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
)

// WriteJSON wraps data in the response envelope. Success follows the status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, api.APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error) {
	writeEnvelope(w, application.ToHTTPStatus(err), api.APIResponse{
		Success: false,
		Error:   ToErrorDetail(err),
	})
}

// ToErrorDetail builds the client-facing error body. Messages of unclassified
// errors are not exposed.
func ToErrorDetail(err error) *api.ErrorDetail {
	detail := &api.ErrorDetail{Code: application.ToErrorCode(err)}

	if svcErr, ok := application.IsServiceError(err); ok {
		detail.Message = svcErr.Message
		if svcErr.Code == application.ErrCodeValidation && svcErr.Err != nil {
			detail.Details = map[string]string{"reason": svcErr.Err.Error()}
		}
		return detail
	}
	if domainErr, ok := domain.AsDomainError(err); ok {
		detail.Message = domainErr.Message
		detail.Details = domainErr.Details
		return detail
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		detail.Message = application.NewTimeoutError().Message
		return detail
	}
	detail.Message = "An internal error occurred"
	return detail
}

func writeEnvelope(w http.ResponseWriter, status int, body api.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
