package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/jackc/pgx/v5"
)

var _ application.ClaimLookup = (*ClaimLookup)(nil)

// ClaimLookup reads claims. It never writes them.
type ClaimLookup struct {
	q Executor
}

func NewClaimLookup(db *DB) *ClaimLookup {
	return &ClaimLookup{q: db.Pool}
}

// FindByID returns nil, nil when no claim has the given ID.
func (l *ClaimLookup) FindByID(ctx context.Context, id int64) (*domain.Claim, error) {
	query := `
		SELECT claim_id, claim_status, claimed_amount
		FROM claims WHERE claim_id = $1
	`

	var m ClaimModel
	err := l.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Status, &m.ClaimedAmount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query claim: %w", err)
	}
	return toDomainClaim(m)
}
