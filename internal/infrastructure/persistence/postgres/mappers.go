package postgres

import (
	"fmt"

	"github.com/DanielPopoola/claimpay/internal/domain"
)

// toDomainModel rebuilds a payment from its row, keeping stored status and date.
func toDomainModel(m PaymentModel) (*domain.Payment, error) {
	amount, err := domain.NewMoneyAmount(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", m.ID, err)
	}
	method, err := domain.ParsePaymentMethod(m.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", m.ID, err)
	}
	status, err := domain.ParsePaymentStatus(m.PaymentStatus)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", m.ID, err)
	}
	reference, err := domain.NewTransactionReference(m.TransactionReference)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", m.ID, err)
	}

	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return domain.NewPayment(domain.PaymentParams{
		ID:          m.ID,
		ClaimID:     m.ClaimID,
		Amount:      amount,
		Method:      method,
		Reference:   reference,
		ProcessedBy: m.ProcessedBy,
		Notes:       notes,
		Status:      status,
		PaymentDate: m.PaymentDate,
	})
}

// toDBModel maps a payment onto its row; ID is zero for unsaved payments.
func toDBModel(p *domain.Payment) *PaymentModel {
	var notes *string
	if n := p.Notes(); n != "" {
		notes = &n
	}
	return &PaymentModel{
		ID:                   p.ID(),
		ClaimID:              p.ClaimID(),
		Amount:               p.Amount().Decimal(),
		PaymentMethod:        string(p.Method()),
		PaymentStatus:        string(p.Status()),
		TransactionReference: p.Reference().String(),
		PaymentDate:          p.PaymentDate(),
		ProcessedBy:          p.ProcessedBy(),
		Notes:                notes,
	}
}

func toDomainClaim(m ClaimModel) (*domain.Claim, error) {
	amount, err := domain.NewMoneyAmount(m.ClaimedAmount)
	if err != nil {
		return nil, fmt.Errorf("claim %d: %w", m.ID, err)
	}
	return &domain.Claim{
		ID:            m.ID,
		Status:        domain.ClaimStatus(m.Status),
		ClaimedAmount: amount,
	}, nil
}
