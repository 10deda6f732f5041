package handlers

import (
	"net/http"

	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/DanielPopoola/claimpay/internal/interfaces/rest"
)

// MarkProcessing moves a PENDING payment to PROCESSING
// @Summary      Start processing a payment
// @Tags         lifecycle
// @Produce      json
// @Param        id   path      int              true  "Payment ID"
// @Success      200  {object}  api.APIResponse
// @Failure      404  {object}  api.APIResponse  "Payment not found"
// @Failure      409  {object}  api.APIResponse  "Illegal state transition"
// @Router       /api/v1/payments/{id}/processing [post]
func (h *Handlers) MarkProcessing(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusProcessing)
}

// MarkCompleted moves a PROCESSING payment to COMPLETED
// @Summary      Complete a payment
// @Tags         lifecycle
// @Produce      json
// @Param        id   path      int              true  "Payment ID"
// @Success      200  {object}  api.APIResponse
// @Failure      404  {object}  api.APIResponse  "Payment not found"
// @Failure      409  {object}  api.APIResponse  "Illegal state transition"
// @Router       /api/v1/payments/{id}/complete [post]
func (h *Handlers) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusCompleted)
}

// MarkFailed moves a PENDING or PROCESSING payment to FAILED
// @Summary      Fail a payment
// @Tags         lifecycle
// @Produce      json
// @Param        id   path      int              true  "Payment ID"
// @Success      200  {object}  api.APIResponse
// @Failure      404  {object}  api.APIResponse  "Payment not found"
// @Failure      409  {object}  api.APIResponse  "Illegal state transition"
// @Router       /api/v1/payments/{id}/fail [post]
func (h *Handlers) MarkFailed(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusFailed)
}

// MarkRefunded moves a COMPLETED payment to REFUNDED
// @Summary      Refund a payment
// @Tags         lifecycle
// @Produce      json
// @Param        id   path      int              true  "Payment ID"
// @Success      200  {object}  api.APIResponse
// @Failure      404  {object}  api.APIResponse  "Payment not found"
// @Failure      409  {object}  api.APIResponse  "Illegal state transition"
// @Router       /api/v1/payments/{id}/refund [post]
func (h *Handlers) MarkRefunded(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusRefunded)
}

func (h *Handlers) transition(w http.ResponseWriter, r *http.Request, target domain.PaymentStatus) {
	id, err := bindPathID(r, "id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	payment, err := h.deps.Lifecycle.Transition(r.Context(), id, target)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToAPIPayment(payment))
}
