// Package api holds the wire types and OpenAPI document of the claimpay HTTP API.
package api

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// PaymentStatus defines model for PaymentStatus.
type PaymentStatus string

const (
	PENDING    PaymentStatus = "PENDING"
	PROCESSING PaymentStatus = "PROCESSING"
	COMPLETED  PaymentStatus = "COMPLETED"
	FAILED     PaymentStatus = "FAILED"
	REFUNDED   PaymentStatus = "REFUNDED"
)

// PaymentMethod defines model for PaymentMethod.
type PaymentMethod string

const (
	BANKTRANSFER PaymentMethod = "BANK_TRANSFER"
	CHECK        PaymentMethod = "CHECK"
	CREDITCARD   PaymentMethod = "CREDIT_CARD"
	CASH         PaymentMethod = "CASH"
)

// Payment defines model for Payment.
type Payment struct {
	Id                       int64              `json:"id"`
	ClaimId                  int64              `json:"claim_id"`
	Amount                   string             `json:"amount"`
	PaymentMethod            PaymentMethod      `json:"payment_method"`
	PaymentMethodDisplayName string             `json:"payment_method_display_name"`
	PaymentStatus            PaymentStatus      `json:"payment_status"`
	TransactionReference     string             `json:"transaction_reference"`
	PaymentDate              openapi_types.Date `json:"payment_date"`
	ProcessedBy              string             `json:"processed_by"`
	Notes                    *string            `json:"notes,omitempty"`
}

// CreatePaymentRequest defines model for CreatePaymentRequest. Amount accepts
// a JSON number or a decimal string.
type CreatePaymentRequest struct {
	ClaimId              int64            `json:"claim_id" validate:"required,gt=0" example:"1"`
	Amount               *decimal.Decimal `json:"amount" validate:"required" swaggertype:"string" example:"5000.00"`
	PaymentMethod        string           `json:"payment_method" validate:"required" example:"BANK_TRANSFER"`
	TransactionReference string           `json:"transaction_reference" validate:"required" example:"TXN1234567890"`
	ProcessedBy          string           `json:"processed_by" validate:"required,max=100" example:"admin@insurance.com"`
	Notes                string           `json:"notes,omitempty" validate:"max=500"`
}

// ErrorDetail defines model for ErrorDetail.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ListPaymentsParams defines parameters for ListPayments.
type ListPaymentsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`

	// CompletedAfter limits the result to COMPLETED payments dated after this day.
	CompletedAfter *openapi_types.Date `form:"completed_after,omitempty" json:"completed_after,omitempty"`
}

// HealthStatus defines model for HealthStatus.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache,omitempty"`
}
