package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewPendingPayment builds an unsaved PENDING payment with a unique reference.
func NewPendingPayment(t *testing.T, claimID int64, amount string) *domain.Payment {
	t.Helper()
	return NewPaymentWith(t, claimID, amount, UniqueReference(), domain.StatusPending, time.Now())
}

func NewPaymentWith(
	t *testing.T,
	claimID int64,
	amount string,
	reference string,
	status domain.PaymentStatus,
	date time.Time,
) *domain.Payment {
	t.Helper()

	money, err := domain.ParseMoneyAmount(amount)
	require.NoError(t, err)
	ref, err := domain.NewTransactionReference(reference)
	require.NoError(t, err)

	payment, err := domain.NewPayment(domain.PaymentParams{
		ClaimID:     claimID,
		Amount:      money,
		Method:      domain.MethodBankTransfer,
		Reference:   ref,
		ProcessedBy: "admin@insurance.com",
		Notes:       "integration",
		Status:      status,
		PaymentDate: date,
	})
	require.NoError(t, err)
	return payment
}

// UniqueReference returns a fresh valid transaction reference.
func UniqueReference() string {
	return strings.ToUpper("TXN" + uuid.New().String()[:8] + uuid.New().String()[:8])
}
