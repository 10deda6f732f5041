package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DanielPopoola/claimpay/internal/api"
	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/DanielPopoola/claimpay/internal/interfaces/rest"
	"github.com/oapi-codegen/runtime"
)

// GetPayment returns one payment
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id   path      int              true  "Payment ID"
// @Success      200  {object}  api.APIResponse
// @Failure      404  {object}  api.APIResponse  "Payment not found"
// @Router       /api/v1/payments/{id} [get]
func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathID(r, "id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	payment, err := h.deps.Queries.FindByID(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToAPIPayment(payment))
}

// GetPaymentByReference looks a payment up by its transaction reference. The
// reference is normalized the same way it was on creation.
// @Summary      Get a payment by transaction reference
// @Tags         payments
// @Produce      json
// @Param        reference  path      string           true  "Transaction reference"
// @Success      200        {object}  api.APIResponse
// @Failure      404        {object}  api.APIResponse  "Payment not found"
// @Router       /api/v1/payments/reference/{reference} [get]
func (h *Handlers) GetPaymentByReference(w http.ResponseWriter, r *http.Request) {
	var reference string
	err := runtime.BindStyledParameterWithOptions("simple", "reference", r.PathValue("reference"), &reference, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		rest.WriteError(w, application.NewValidationError(fmt.Errorf("invalid format for parameter reference: %w", err)))
		return
	}

	payment, err := h.deps.Queries.FindByTransactionReference(r.Context(), reference)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToAPIPayment(payment))
}

// ListPaymentsByClaim returns every payment recorded for a claim
// @Summary      List payments for a claim
// @Tags         payments
// @Produce      json
// @Param        claimId  path      int  true  "Claim ID"
// @Success      200      {object}  api.APIResponse
// @Router       /api/v1/payments/claim/{claimId} [get]
func (h *Handlers) ListPaymentsByClaim(w http.ResponseWriter, r *http.Request) {
	claimID, err := bindPathID(r, "claimId")
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	payments, err := h.deps.Queries.FindByClaimID(r.Context(), claimID)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToAPIPayments(payments))
}

// ListPayments returns all payments, optionally filtered by status or by
// completion date
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        status           query     string  false  "PENDING, PROCESSING, COMPLETED, FAILED or REFUNDED"
// @Param        completed_after  query     string  false  "Only COMPLETED payments dated after this day (YYYY-MM-DD)"
// @Success      200              {object}  api.APIResponse
// @Failure      400              {object}  api.APIResponse  "Unknown status or malformed date"
// @Router       /api/v1/payments [get]
func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	var params api.ListPaymentsParams
	if err := runtime.BindQueryParameter("form", true, false, "status", r.URL.Query(), &params.Status); err != nil {
		rest.WriteError(w, application.NewValidationError(fmt.Errorf("invalid format for parameter status: %w", err)))
		return
	}

	if err := runtime.BindQueryParameter("form", true, false, "completed_after", r.URL.Query(), &params.CompletedAfter); err != nil {
		rest.WriteError(w, application.NewValidationError(fmt.Errorf("invalid format for parameter completed_after: %w", err)))
		return
	}

	var status string
	if params.Status != nil {
		status = *params.Status
	}

	if params.CompletedAfter != nil {
		if status != "" && !strings.EqualFold(strings.TrimSpace(status), string(domain.StatusCompleted)) {
			rest.WriteError(w, application.NewValidationError(errors.New("completed_after only applies to COMPLETED payments")))
			return
		}
		payments, err := h.deps.Queries.FindCompletedAfter(r.Context(), params.CompletedAfter.Time)
		if err != nil {
			rest.WriteError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, rest.ToAPIPayments(payments))
		return
	}

	payments, err := h.deps.Queries.List(r.Context(), status)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToAPIPayments(payments))
}
