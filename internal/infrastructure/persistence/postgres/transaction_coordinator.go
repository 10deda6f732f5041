package postgres

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ application.UnitOfWork = (*TransactionCoordinator)(nil)

// TransactionCoordinator hands out a claim lookup and payment store bound to
// one transaction.
type TransactionCoordinator struct {
	pool *pgxpool.Pool
}

func NewTransactionCoordinator(db *DB) *TransactionCoordinator {
	return &TransactionCoordinator{
		pool: db.Pool,
	}
}

// WithinTx commits when fn returns nil and rolls back on every other path,
// including panics.
func (tc *TransactionCoordinator) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, claims application.ClaimLookup, payments application.PaymentStore) error,
) error {
	tx, err := tc.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(ctx, &ClaimLookup{q: tx}, &PaymentStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
