package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/claimpay/internal/api"
	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/DanielPopoola/claimpay/internal/interfaces/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) api.APIResponse {
	t.Helper()
	var resp api.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	rest.WriteJSON(rr, http.StatusCreated, map[string]string{"ok": "yes"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	resp := decode(t, rr)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"ok": "yes"}, resp.Data)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		details map[string]string
	}{
		{
			name:    "domain error keeps message and details",
			err:     fmt.Errorf("tx: %w", domain.NewClaimNotApprovedError(4, domain.ClaimRejected)),
			status:  http.StatusConflict,
			code:    domain.ErrCodeClaimNotApproved,
			message: "claim 4 is not approved (status REJECTED)",
			details: map[string]string{"claim_id": "4", "claim_status": "REJECTED"},
		},
		{
			name:    "internal error hides cause",
			err:     application.NewInternalError(errors.New("password authentication failed")),
			status:  http.StatusInternalServerError,
			code:    application.ErrCodeInternal,
			message: "An internal error occurred",
		},
		{
			name:    "validation error explains why",
			err:     application.NewValidationError(errors.New("processed_by is required")),
			status:  http.StatusBadRequest,
			code:    application.ErrCodeValidation,
			message: "Request validation failed",
			details: map[string]string{"reason": "processed_by is required"},
		},
		{
			name:    "bare deadline",
			err:     context.DeadlineExceeded,
			status:  http.StatusRequestTimeout,
			code:    application.ErrCodeTimeout,
			message: "Request timed out waiting for completion",
		},
		{
			name:    "unknown error",
			err:     errors.New("driver: bad connection"),
			status:  http.StatusInternalServerError,
			code:    application.ErrCodeInternal,
			message: "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			rest.WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			resp := decode(t, rr)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Equal(t, tt.details, resp.Error.Details)
		})
	}
}

func TestToAPIPayment(t *testing.T) {
	amount, err := domain.ParseMoneyAmount("1200.5")
	require.NoError(t, err)
	ref, err := domain.NewTransactionReference("chk00012345")
	require.NoError(t, err)
	payment, err := domain.NewPayment(domain.PaymentParams{
		ID:          3,
		ClaimID:     9,
		Amount:      amount,
		Method:      domain.MethodCheck,
		Reference:   ref,
		ProcessedBy: "clerk@insurance.com",
		PaymentDate: time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	out := rest.ToAPIPayment(payment)

	assert.Equal(t, int64(3), out.Id)
	assert.Equal(t, "1200.50", out.Amount)
	assert.Equal(t, api.CHECK, out.PaymentMethod)
	assert.Equal(t, "Check", out.PaymentMethodDisplayName)
	assert.Equal(t, api.PENDING, out.PaymentStatus)
	assert.Equal(t, "CHK00012345", out.TransactionReference)
	assert.Nil(t, out.Notes)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"payment_date":"2025-02-14"`)
	assert.NotContains(t, string(raw), `"notes"`)

	assert.NotNil(t, rest.ToAPIPayments(nil))
}
