package domain_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("creates pending payment dated today", func(t *testing.T) {
		payment, err := domain.NewPayment(validParams(t))

		require.NoError(t, err)
		assert.Equal(t, int64(0), payment.ID())
		assert.Equal(t, int64(1), payment.ClaimID())
		assert.Equal(t, "5000.00", payment.Amount().String())
		assert.Equal(t, domain.MethodBankTransfer, payment.Method())
		assert.Equal(t, domain.StatusPending, payment.Status())
		assert.Equal(t, "TXN1234567890", payment.Reference().String())
		assert.Equal(t, domain.Today(time.Now()), payment.PaymentDate())
		assert.Equal(t, "admin@insurance.com", payment.ProcessedBy())
		assert.True(t, payment.IsPending())
	})

	t.Run("keeps explicit status and date when reconstructing", func(t *testing.T) {
		params := validParams(t)
		params.ID = 42
		params.Status = domain.StatusCompleted
		params.PaymentDate = time.Date(2025, 11, 7, 15, 30, 0, 0, time.UTC)

		payment, err := domain.NewPayment(params)

		require.NoError(t, err)
		assert.Equal(t, int64(42), payment.ID())
		assert.Equal(t, domain.StatusCompleted, payment.Status())
		assert.Equal(t, time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC), payment.PaymentDate())
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(p *domain.PaymentParams)
			field  string
		}{
			{"claim id", func(p *domain.PaymentParams) { p.ClaimID = 0 }, "claim ID"},
			{"amount", func(p *domain.PaymentParams) { p.Amount = domain.MoneyAmount{} }, "amount"},
			{"method", func(p *domain.PaymentParams) { p.Method = "" }, "payment method"},
			{"reference", func(p *domain.PaymentParams) { p.Reference = domain.TransactionReference{} }, "transaction reference"},
			{"processed by", func(p *domain.PaymentParams) { p.ProcessedBy = "   " }, "processed by"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				params := validParams(t)
				tt.mutate(&params)

				_, err := domain.NewPayment(params)

				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.field+" is required")
			})
		}
	})

	t.Run("rejects unknown explicit status", func(t *testing.T) {
		params := validParams(t)
		params.Status = "SETTLED"

		_, err := domain.NewPayment(params)

		assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
	})
}

func TestPayment_WithID(t *testing.T) {
	payment := createPaymentWithStatus(t, domain.StatusPending)

	saved, err := payment.WithID(7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.ID())
	assert.Equal(t, int64(0), payment.ID())

	_, err = payment.WithID(0)
	assert.Error(t, err)
}

func TestPayment_StateTransitions(t *testing.T) {
	t.Run("PENDING -> PROCESSING -> COMPLETED", func(t *testing.T) {
		payment := createPaymentWithStatus(t, domain.StatusPending)

		require.NoError(t, payment.MarkAsProcessing())
		assert.Equal(t, domain.StatusProcessing, payment.Status())

		require.NoError(t, payment.MarkAsCompleted())
		assert.Equal(t, domain.StatusCompleted, payment.Status())
		assert.True(t, payment.IsCompleted())
	})

	t.Run("PENDING -> FAILED", func(t *testing.T) {
		payment := createPaymentWithStatus(t, domain.StatusPending)

		require.NoError(t, payment.MarkAsFailed())
		assert.Equal(t, domain.StatusFailed, payment.Status())
	})

	t.Run("PROCESSING -> FAILED", func(t *testing.T) {
		payment := createPaymentWithStatus(t, domain.StatusProcessing)

		require.NoError(t, payment.MarkAsFailed())
		assert.Equal(t, domain.StatusFailed, payment.Status())
	})

	t.Run("COMPLETED -> REFUNDED", func(t *testing.T) {
		payment := createPaymentWithStatus(t, domain.StatusCompleted)

		require.NoError(t, payment.MarkAsRefunded())
		assert.Equal(t, domain.StatusRefunded, payment.Status())
	})
}

func TestPayment_InvalidStateTransitions(t *testing.T) {
	t.Run("cannot fail from COMPLETED", func(t *testing.T) {
		payment := createPaymentWithStatus(t, domain.StatusCompleted)

		err := payment.MarkAsFailed()

		assert.ErrorIs(t, err, domain.ErrIllegalStateTransition)
		assert.Equal(t, domain.StatusCompleted, payment.Status())

		domainErr, ok := domain.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "COMPLETED", domainErr.Details["from"])
		assert.Equal(t, "FAILED", domainErr.Details["to"])
	})

	t.Run("cannot complete from PENDING", func(t *testing.T) {
		payment := createPaymentWithStatus(t, domain.StatusPending)

		assert.ErrorIs(t, payment.MarkAsCompleted(), domain.ErrIllegalStateTransition)
	})

	t.Run("cannot refund from PENDING or PROCESSING", func(t *testing.T) {
		for _, status := range []domain.PaymentStatus{domain.StatusPending, domain.StatusProcessing} {
			payment := createPaymentWithStatus(t, status)

			assert.ErrorIs(t, payment.MarkAsRefunded(), domain.ErrIllegalStateTransition)
		}
	})

	t.Run("FAILED and REFUNDED accept nothing", func(t *testing.T) {
		for _, from := range []domain.PaymentStatus{domain.StatusFailed, domain.StatusRefunded} {
			payment := createPaymentWithStatus(t, from)

			assert.ErrorIs(t, payment.MarkAsProcessing(), domain.ErrIllegalStateTransition)
			assert.ErrorIs(t, payment.MarkAsCompleted(), domain.ErrIllegalStateTransition)
			assert.ErrorIs(t, payment.MarkAsFailed(), domain.ErrIllegalStateTransition)
			assert.ErrorIs(t, payment.MarkAsRefunded(), domain.ErrIllegalStateTransition)
			assert.Equal(t, from, payment.Status())
		}
	})

	t.Run("PENDING is never a target", func(t *testing.T) {
		payment := createPaymentWithStatus(t, domain.StatusProcessing)

		assert.ErrorIs(t, payment.TransitionTo(domain.StatusPending), domain.ErrIllegalStateTransition)
	})
}

func TestCanTransition(t *testing.T) {
	all := []domain.PaymentStatus{
		domain.StatusPending,
		domain.StatusProcessing,
		domain.StatusCompleted,
		domain.StatusFailed,
		domain.StatusRefunded,
	}
	allowed := map[[2]domain.PaymentStatus]bool{
		{domain.StatusPending, domain.StatusProcessing}:   true,
		{domain.StatusPending, domain.StatusFailed}:       true,
		{domain.StatusProcessing, domain.StatusCompleted}: true,
		{domain.StatusProcessing, domain.StatusFailed}:    true,
		{domain.StatusCompleted, domain.StatusRefunded}:   true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]domain.PaymentStatus{from, to}]
			assert.Equal(t, want, domain.CanTransition(from, to), "%s -> %s", from, to)

			payment := createPaymentWithStatus(t, from)
			err := payment.TransitionTo(to)
			if want {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, domain.ErrIllegalStateTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestPaymentStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.PaymentStatus
		terminal bool
	}{
		{"PENDING is not terminal", domain.StatusPending, false},
		{"PROCESSING is not terminal", domain.StatusProcessing, false},
		{"COMPLETED is terminal", domain.StatusCompleted, true},
		{"FAILED is terminal", domain.StatusFailed, true},
		{"REFUNDED is terminal", domain.StatusRefunded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := createPaymentWithStatus(t, tt.status)

			assert.Equal(t, tt.terminal, payment.IsTerminal())
		})
	}
}

func TestParsePaymentStatus(t *testing.T) {
	status, err := domain.ParsePaymentStatus(" completed ")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, status)
	assert.Equal(t, "Completed", status.DisplayName())

	_, err = domain.ParsePaymentStatus("SETTLED")
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

func TestToday_UsesUTCCalendarDate(t *testing.T) {
	ahead := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2025, time.February, 14, 1, 30, 0, 0, ahead)

	today := domain.Today(local)

	assert.Equal(t, time.Date(2025, time.February, 13, 0, 0, 0, 0, time.UTC), today)
}

func validParams(t *testing.T) domain.PaymentParams {
	t.Helper()
	amount, err := domain.ParseMoneyAmount("5000.00")
	require.NoError(t, err)
	ref, err := domain.NewTransactionReference("TXN1234567890")
	require.NoError(t, err)

	return domain.PaymentParams{
		ClaimID:     1,
		Amount:      amount,
		Method:      domain.MethodBankTransfer,
		Reference:   ref,
		ProcessedBy: "admin@insurance.com",
	}
}

func createPaymentWithStatus(t *testing.T, status domain.PaymentStatus) *domain.Payment {
	t.Helper()
	params := validParams(t)
	params.Status = status

	payment, err := domain.NewPayment(params)
	require.NoError(t, err)
	return payment
}
