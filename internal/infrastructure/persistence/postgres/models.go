package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentModel mirrors a row of the payments table.
type PaymentModel struct {
	ID                   int64
	ClaimID              int64
	Amount               decimal.Decimal
	PaymentMethod        string
	PaymentStatus        string
	TransactionReference string
	PaymentDate          time.Time
	ProcessedBy          string
	Notes                *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ClaimModel is the subset of the claims table needed to pay a claim.
type ClaimModel struct {
	ID            int64
	Status        string
	ClaimedAmount decimal.Decimal
}
