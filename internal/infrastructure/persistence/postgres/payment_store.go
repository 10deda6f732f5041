package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/jackc/pgx/v5"
)

const transactionReferenceConstraint = "uq_payments_transaction_reference"

const paymentColumns = `
	payment_id, claim_id, amount, payment_method, payment_status,
	transaction_reference, payment_date, processed_by, notes, created_at, updated_at`

var _ application.PaymentStore = (*PaymentStore)(nil)

// PaymentStore persists payments. It runs against the pool, or against a
// transaction when handed out by the TransactionCoordinator.
type PaymentStore struct {
	q Executor
}

func NewPaymentStore(db *DB) *PaymentStore {
	return &PaymentStore{q: db.Pool}
}

func (s *PaymentStore) ExistsByTransactionReference(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE transaction_reference = $1)`,
		reference,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check transaction reference: %w", err)
	}
	return exists, nil
}

// Save inserts the payment and returns it with its generated ID.
func (s *PaymentStore) Save(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
		INSERT INTO payments (
			claim_id, amount, payment_method, payment_status,
			transaction_reference, payment_date, processed_by, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING payment_id
	`

	m := toDBModel(payment)
	var id int64
	err := s.q.QueryRow(ctx, query,
		m.ClaimID,
		m.Amount,
		m.PaymentMethod,
		m.PaymentStatus,
		m.TransactionReference,
		m.PaymentDate,
		m.ProcessedBy,
		m.Notes,
	).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err, transactionReferenceConstraint) {
			return nil, domain.NewDuplicateTransactionReferenceError(m.TransactionReference)
		}
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	return payment.WithID(id)
}

func (s *PaymentStore) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE payment_id = $1`

	payment, err := scanPayment(s.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewPaymentNotFoundError(strconv.FormatInt(id, 10))
	}
	return payment, err
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (s *PaymentStore) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE payment_id = $1 FOR UPDATE`

	payment, err := scanPayment(s.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewPaymentNotFoundError(strconv.FormatInt(id, 10))
	}
	return payment, err
}

func (s *PaymentStore) FindByTransactionReference(ctx context.Context, reference string) (*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE transaction_reference = $1`

	payment, err := scanPayment(s.q.QueryRow(ctx, query, reference))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.DomainError{
			Code:    domain.ErrCodePaymentNotFound,
			Message: fmt.Sprintf("payment with transaction reference %s not found", reference),
			Details: map[string]string{"transaction_reference": reference},
		}
	}
	return payment, err
}

func (s *PaymentStore) FindByClaimID(ctx context.Context, claimID int64) ([]*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE claim_id = $1 ORDER BY payment_id`
	return s.list(ctx, "by claim", query, claimID)
}

func (s *PaymentStore) FindByStatus(ctx context.Context, status domain.PaymentStatus) ([]*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE payment_status = $1 ORDER BY payment_id`
	return s.list(ctx, "by status", query, string(status))
}

func (s *PaymentStore) FindAll(ctx context.Context) ([]*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments ORDER BY payment_id`
	return s.list(ctx, "all", query)
}

// FindCompletedAfter returns COMPLETED payments with a payment date strictly after date.
func (s *PaymentStore) FindCompletedAfter(ctx context.Context, date time.Time) ([]*domain.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments
		WHERE payment_status = 'COMPLETED'
		  AND payment_date > $1
		ORDER BY payment_date, payment_id`
	return s.list(ctx, "completed after", query, date)
}

func (s *PaymentStore) UpdateStatus(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET payment_status = $1, updated_at = NOW()
		WHERE payment_id = $2
	`

	tag, err := s.q.Exec(ctx, query, string(payment.Status()), payment.ID())
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewPaymentNotFoundError(strconv.FormatInt(payment.ID(), 10))
	}
	return nil
}

func (s *PaymentStore) list(ctx context.Context, what, query string, args ...any) ([]*domain.Payment, error) {
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments %s: %w", what, err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan payments %s: %w", what, err)
	}
	return results, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var m PaymentModel
	err := row.Scan(
		&m.ID, &m.ClaimID, &m.Amount, &m.PaymentMethod, &m.PaymentStatus,
		&m.TransactionReference, &m.PaymentDate, &m.ProcessedBy, &m.Notes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return toDomainModel(m)
}
