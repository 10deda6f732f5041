package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/claimpay/internal/domain"
)

// ClaimLookup is the read-only port onto the claims owned by another service.
type ClaimLookup interface {
	// FindByID returns nil, nil when the claim does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Claim, error)
}

// PaymentStore is the port for payment persistence.
type PaymentStore interface {
	ExistsByTransactionReference(ctx context.Context, reference string) (bool, error)
	// Save inserts a new payment and returns it with its assigned ID. A
	// reference collision surfaces as DuplicateTransactionReference.
	Save(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id int64) (*domain.Payment, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error)
	FindByClaimID(ctx context.Context, claimID int64) ([]*domain.Payment, error)
	FindByStatus(ctx context.Context, status domain.PaymentStatus) ([]*domain.Payment, error)
	FindAll(ctx context.Context) ([]*domain.Payment, error)
	FindByTransactionReference(ctx context.Context, reference string) (*domain.Payment, error)
	FindCompletedAfter(ctx context.Context, date time.Time) ([]*domain.Payment, error)
	UpdateStatus(ctx context.Context, payment *domain.Payment) error
}

// UnitOfWork runs fn atomically. Everything fn does through the supplied
// lookup and store commits together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, claims ClaimLookup, payments PaymentStore) error) error
}

// Metrics records service-level outcomes.
type Metrics interface {
	PaymentProcessed(outcome string, elapsed time.Duration)
	PaymentTransitioned(from, to domain.PaymentStatus)
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) PaymentProcessed(string, time.Duration) {}
func (NoopMetrics) PaymentTransitioned(domain.PaymentStatus, domain.PaymentStatus) {}
