package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
)

// LifecycleService moves stored payments through their state machine.
type LifecycleService struct {
	uow     application.UnitOfWork
	metrics application.Metrics
	logger  *slog.Logger
}

func NewLifecycleService(uow application.UnitOfWork, metrics application.Metrics, logger *slog.Logger) *LifecycleService {
	if metrics == nil {
		metrics = application.NoopMetrics{}
	}
	return &LifecycleService{
		uow:     uow,
		metrics: metrics,
		logger:  logger,
	}
}

// Transition locks the payment row, applies the move and persists it in one
// transaction.
func (s *LifecycleService) Transition(ctx context.Context, paymentID int64, target domain.PaymentStatus) (*domain.Payment, error) {
	var (
		payment *domain.Payment
		from    domain.PaymentStatus
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, _ application.ClaimLookup, payments application.PaymentStore) error {
		var err error
		payment, err = payments.FindByIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}

		from = payment.Status()
		if err := payment.TransitionTo(target); err != nil {
			return err
		}
		return payments.UpdateStatus(ctx, payment)
	})
	if err != nil {
		err = classify(err)
		logFailure(s.logger, "payment transition rejected", err,
			"payment_id", paymentID,
			"target", target,
		)
		return nil, err
	}

	s.metrics.PaymentTransitioned(from, target)
	s.logger.Info("payment transitioned",
		"payment_id", paymentID,
		"from", from,
		"to", target,
	)
	return payment, nil
}

func (s *LifecycleService) MarkAsProcessing(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	return s.Transition(ctx, paymentID, domain.StatusProcessing)
}

func (s *LifecycleService) MarkAsCompleted(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	return s.Transition(ctx, paymentID, domain.StatusCompleted)
}

func (s *LifecycleService) MarkAsFailed(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	return s.Transition(ctx, paymentID, domain.StatusFailed)
}

func (s *LifecycleService) MarkAsRefunded(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	return s.Transition(ctx, paymentID, domain.StatusRefunded)
}
