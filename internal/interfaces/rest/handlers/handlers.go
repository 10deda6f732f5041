package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/application/services"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/go-playground/validator"
	"github.com/oapi-codegen/runtime"
)

type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, in services.ProcessPaymentInput) (*services.ProcessPaymentOutput, error)
}

type PaymentLifecycle interface {
	Transition(ctx context.Context, paymentID int64, target domain.PaymentStatus) (*domain.Payment, error)
}

type PaymentQueries interface {
	FindByID(ctx context.Context, id int64) (*domain.Payment, error)
	FindByClaimID(ctx context.Context, claimID int64) ([]*domain.Payment, error)
	List(ctx context.Context, status string) ([]*domain.Payment, error)
	FindByTransactionReference(ctx context.Context, reference string) (*domain.Payment, error)
	FindCompletedAfter(ctx context.Context, date time.Time) ([]*domain.Payment, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies groups what the handlers call into. Cache may be nil when
// Redis is not configured.
type Dependencies struct {
	Processor PaymentProcessor
	Lifecycle PaymentLifecycle
	Queries   PaymentQueries
	Database  Pinger
	Cache     Pinger
}

type Handlers struct {
	deps     Dependencies
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandlers(deps Dependencies, logger *slog.Logger) *Handlers {
	return &Handlers{
		deps:     deps,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/payments", h.CreatePayment)
	mux.HandleFunc("GET /api/v1/payments", h.ListPayments)
	mux.HandleFunc("GET /api/v1/payments/{id}", h.GetPayment)
	mux.HandleFunc("GET /api/v1/payments/claim/{claimId}", h.ListPaymentsByClaim)
	mux.HandleFunc("GET /api/v1/payments/reference/{reference}", h.GetPaymentByReference)
	mux.HandleFunc("POST /api/v1/payments/{id}/processing", h.MarkProcessing)
	mux.HandleFunc("POST /api/v1/payments/{id}/complete", h.MarkCompleted)
	mux.HandleFunc("POST /api/v1/payments/{id}/fail", h.MarkFailed)
	mux.HandleFunc("POST /api/v1/payments/{id}/refund", h.MarkRefunded)
	mux.HandleFunc("GET /healthz", h.Health)
}

func bindPathID(r *http.Request, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, r.PathValue(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, application.NewValidationError(fmt.Errorf("invalid format for parameter %s: %w", name, err))
	}
	if id <= 0 {
		return 0, application.NewValidationError(fmt.Errorf("parameter %s must be positive", name))
	}
	return id, nil
}
