package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/shopspring/decimal"
)

// ProcessPaymentInput is the raw request to pay a claim. Amount is a pointer so
// a missing amount can be told apart from zero.
type ProcessPaymentInput struct {
	ClaimID              int64
	Amount               *decimal.Decimal
	PaymentMethod        string
	TransactionReference string
	ProcessedBy          string
	Notes                string
}

// Column limits for the free-text fields.
const (
	MaxProcessedByLength = 100
	MaxNotesLength       = 500
)

// Validate checks presence and length of the raw fields. Business validation
// happens inside ProcessPayment.
func (in ProcessPaymentInput) Validate() error {
	switch {
	case in.ClaimID == 0:
		return domain.NewInvalidInputError("claim ID")
	case in.Amount == nil:
		return domain.NewInvalidInputError("amount")
	case strings.TrimSpace(in.PaymentMethod) == "":
		return domain.NewInvalidInputError("payment method")
	case strings.TrimSpace(in.TransactionReference) == "":
		return domain.NewInvalidInputError("transaction reference")
	case strings.TrimSpace(in.ProcessedBy) == "":
		return domain.NewInvalidInputError("processed by")
	case utf8.RuneCountInString(in.ProcessedBy) > MaxProcessedByLength:
		return domain.NewInputTooLongError("processed by", MaxProcessedByLength)
	case utf8.RuneCountInString(in.Notes) > MaxNotesLength:
		return domain.NewInputTooLongError("notes", MaxNotesLength)
	}
	return nil
}

type ProcessPaymentOutput struct {
	PaymentID            int64
	Status               domain.PaymentStatus
	PaymentDate          time.Time
	TransactionReference string
	Payment              *domain.Payment
}

// ProcessPaymentService records a new payment against an approved claim.
type ProcessPaymentService struct {
	uow     application.UnitOfWork
	metrics application.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewProcessPaymentService(
	uow application.UnitOfWork,
	metrics application.Metrics,
	logger *slog.Logger,
) *ProcessPaymentService {
	if metrics == nil {
		metrics = application.NoopMetrics{}
	}
	return &ProcessPaymentService{
		uow:     uow,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// ProcessPayment validates the request against the claim and stores a PENDING
// payment. All reads and the single insert share one unit of work; nothing is
// written unless every check passes.
func (s *ProcessPaymentService) ProcessPayment(ctx context.Context, in ProcessPaymentInput) (*ProcessPaymentOutput, error) {
	start := s.now()

	out, err := s.process(ctx, in)

	s.record(in, out, err, s.now().Sub(start))
	return out, err
}

func (s *ProcessPaymentService) process(ctx context.Context, in ProcessPaymentInput) (*ProcessPaymentOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var saved *domain.Payment
	err := s.uow.WithinTx(ctx, func(ctx context.Context, claims application.ClaimLookup, payments application.PaymentStore) error {
		claim, err := claims.FindByID(ctx, in.ClaimID)
		if err != nil {
			return fmt.Errorf("find claim %d: %w", in.ClaimID, err)
		}
		if claim == nil {
			return domain.NewClaimNotFoundError(in.ClaimID)
		}
		if !claim.IsApproved() {
			return domain.NewClaimNotApprovedError(claim.ID, claim.Status)
		}

		normalized := domain.NormalizeTransactionReference(in.TransactionReference)
		exists, err := payments.ExistsByTransactionReference(ctx, normalized)
		if err != nil {
			return fmt.Errorf("check transaction reference: %w", err)
		}
		if exists {
			return domain.NewDuplicateTransactionReferenceError(normalized)
		}

		amount, err := domain.NewMoneyAmountFromPtr(in.Amount)
		if err != nil {
			return err
		}
		if amount.GreaterThan(claim.ClaimedAmount) {
			return domain.NewPaymentExceedsClaimAmountError(amount, claim.ClaimedAmount)
		}

		method, err := domain.ParsePaymentMethod(in.PaymentMethod)
		if err != nil {
			return err
		}

		reference, err := domain.NewTransactionReference(in.TransactionReference)
		if err != nil {
			return err
		}

		payment, err := domain.NewPayment(domain.PaymentParams{
			ClaimID:     claim.ID,
			Amount:      amount,
			Method:      method,
			Reference:   reference,
			ProcessedBy: strings.TrimSpace(in.ProcessedBy),
			Notes:       in.Notes,
			PaymentDate: domain.Today(s.now()),
		})
		if err != nil {
			return err
		}

		saved, err = payments.Save(ctx, payment)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}

	return &ProcessPaymentOutput{
		PaymentID:            saved.ID(),
		Status:               saved.Status(),
		PaymentDate:          saved.PaymentDate(),
		TransactionReference: saved.Reference().String(),
		Payment:              saved,
	}, nil
}

func (s *ProcessPaymentService) record(in ProcessPaymentInput, out *ProcessPaymentOutput, err error, elapsed time.Duration) {
	if err == nil {
		s.metrics.PaymentProcessed("created", elapsed)
		s.logger.Info("payment created",
			"payment_id", out.PaymentID,
			"claim_id", in.ClaimID,
			"transaction_reference", out.TransactionReference,
		)
		return
	}

	s.metrics.PaymentProcessed(strings.ToLower(application.ToErrorCode(err)), elapsed)

	logFailure(s.logger, "payment rejected", err,
		"claim_id", in.ClaimID,
		"transaction_reference", in.TransactionReference,
	)
}
