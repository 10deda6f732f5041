package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/DanielPopoola/claimpay/internal/api"
	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/application/services"
	"github.com/DanielPopoola/claimpay/internal/interfaces/rest"
)

// CreatePayment records a payment against an approved claim
// @Summary      Process a claim payment
// @Description  Validates the claim and amount, then records a PENDING payment. Transaction references are unique.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                    false  "Replays the stored response for retried requests"
// @Param        request          body      api.CreatePaymentRequest  true   "Payment details"
// @Success      201              {object}  api.APIResponse           "Payment created"
// @Failure      400              {object}  api.APIResponse           "Invalid input, amount, method or reference"
// @Failure      404              {object}  api.APIResponse           "Claim not found"
// @Failure      409              {object}  api.APIResponse           "Claim not approved or duplicate reference"
// @Failure      500              {object}  api.APIResponse           "Internal server error"
// @Router       /api/v1/payments [post]
func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rest.WriteError(w, application.NewValidationError(err))
		return
	}

	var req api.CreatePaymentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		rest.WriteError(w, application.NewValidationError(err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		rest.WriteError(w, application.NewValidationError(err))
		return
	}

	out, err := h.deps.Processor.ProcessPayment(r.Context(), services.ProcessPaymentInput{
		ClaimID:              req.ClaimId,
		Amount:               req.Amount,
		PaymentMethod:        req.PaymentMethod,
		TransactionReference: req.TransactionReference,
		ProcessedBy:          req.ProcessedBy,
		Notes:                req.Notes,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.ToAPIPayment(out.Payment))
}
