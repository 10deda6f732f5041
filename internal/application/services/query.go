package services

import (
	"context"
	"strings"
	"time"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
)

type QueryService struct {
	payments application.PaymentStore
}

func NewQueryService(payments application.PaymentStore) *QueryService {
	return &QueryService{
		payments: payments,
	}
}

func (s *QueryService) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return payment, nil
}

func (s *QueryService) FindByClaimID(ctx context.Context, claimID int64) ([]*domain.Payment, error) {
	payments, err := s.payments.FindByClaimID(ctx, claimID)
	if err != nil {
		return nil, classify(err)
	}
	return payments, nil
}

// List returns every payment, or only those in status when it is non-empty.
func (s *QueryService) List(ctx context.Context, status string) ([]*domain.Payment, error) {
	var (
		payments []*domain.Payment
		err      error
	)
	if strings.TrimSpace(status) == "" {
		payments, err = s.payments.FindAll(ctx)
	} else {
		parsed, parseErr := domain.ParsePaymentStatus(status)
		if parseErr != nil {
			return nil, parseErr
		}
		payments, err = s.payments.FindByStatus(ctx, parsed)
	}
	if err != nil {
		return nil, classify(err)
	}
	return payments, nil
}

func (s *QueryService) FindByTransactionReference(ctx context.Context, reference string) (*domain.Payment, error) {
	payment, err := s.payments.FindByTransactionReference(ctx, domain.NormalizeTransactionReference(reference))
	if err != nil {
		return nil, classify(err)
	}
	return payment, nil
}

// FindCompletedAfter returns COMPLETED payments dated strictly after date.
func (s *QueryService) FindCompletedAfter(ctx context.Context, date time.Time) ([]*domain.Payment, error) {
	payments, err := s.payments.FindCompletedAfter(ctx, domain.Today(date))
	if err != nil {
		return nil, classify(err)
	}
	return payments, nil
}
