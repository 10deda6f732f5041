package rest

import (
	"github.com/DanielPopoola/claimpay/internal/api"
	"github.com/DanielPopoola/claimpay/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func ToAPIPayment(p *domain.Payment) api.Payment {
	out := api.Payment{
		Id:                       p.ID(),
		ClaimId:                  p.ClaimID(),
		Amount:                   p.Amount().String(),
		PaymentMethod:            api.PaymentMethod(p.Method()),
		PaymentMethodDisplayName: p.Method().DisplayName(),
		PaymentStatus:            api.PaymentStatus(p.Status()),
		TransactionReference:     p.Reference().String(),
		PaymentDate:              openapi_types.Date{Time: p.PaymentDate()},
		ProcessedBy:              p.ProcessedBy(),
	}
	if notes := p.Notes(); notes != "" {
		out.Notes = &notes
	}
	return out
}

// ToAPIPayments never returns nil so empty lists encode as [].
func ToAPIPayments(payments []*domain.Payment) []api.Payment {
	out := make([]api.Payment, 0, len(payments))
	for _, p := range payments {
		out = append(out, ToAPIPayment(p))
	}
	return out
}
