package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// DomainError represents a business rule violation
type DomainError struct {
	Code    string
	Message string
	Details map[string]string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code, so the sentinels below
// can be used with errors.Is regardless of message or details.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

const (
	ErrCodeInvalidInput                  = "INVALID_INPUT"
	ErrCodeInvalidAmount                 = "INVALID_AMOUNT"
	ErrCodeInvalidTransactionReference   = "INVALID_TRANSACTION_REFERENCE"
	ErrCodeInvalidPaymentMethod          = "INVALID_PAYMENT_METHOD"
	ErrCodeInvalidPaymentStatus          = "INVALID_PAYMENT_STATUS"
	ErrCodeClaimNotFound                 = "CLAIM_NOT_FOUND"
	ErrCodeClaimNotApproved              = "CLAIM_NOT_APPROVED"
	ErrCodeDuplicateTransactionReference = "DUPLICATE_TRANSACTION_REFERENCE"
	ErrCodePaymentExceedsClaimAmount     = "PAYMENT_EXCEEDS_CLAIM_AMOUNT"
	ErrCodeIllegalStateTransition        = "ILLEGAL_STATE_TRANSITION"
	ErrCodePaymentNotFound               = "PAYMENT_NOT_FOUND"
)

var (
	ErrInvalidInput                  = &DomainError{Code: ErrCodeInvalidInput, Message: "invalid input"}
	ErrInvalidAmount                 = &DomainError{Code: ErrCodeInvalidAmount, Message: "invalid amount"}
	ErrInvalidTransactionReference   = &DomainError{Code: ErrCodeInvalidTransactionReference, Message: "invalid transaction reference"}
	ErrInvalidPaymentMethod          = &DomainError{Code: ErrCodeInvalidPaymentMethod, Message: "invalid payment method"}
	ErrInvalidPaymentStatus          = &DomainError{Code: ErrCodeInvalidPaymentStatus, Message: "invalid payment status"}
	ErrClaimNotFound                 = &DomainError{Code: ErrCodeClaimNotFound, Message: "claim not found"}
	ErrClaimNotApproved              = &DomainError{Code: ErrCodeClaimNotApproved, Message: "claim not approved"}
	ErrDuplicateTransactionReference = &DomainError{Code: ErrCodeDuplicateTransactionReference, Message: "duplicate transaction reference"}
	ErrPaymentExceedsClaimAmount     = &DomainError{Code: ErrCodePaymentExceedsClaimAmount, Message: "payment exceeds claim amount"}
	ErrIllegalStateTransition        = &DomainError{Code: ErrCodeIllegalStateTransition, Message: "illegal state transition"}
	ErrPaymentNotFound               = &DomainError{Code: ErrCodePaymentNotFound, Message: "payment not found"}
)

func NewInvalidInputError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("%s is required", field),
		Details: map[string]string{"field": field},
	}
}

func NewInputTooLongError(field string, max int) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("%s must be at most %d characters", field, max),
		Details: map[string]string{"field": field, "max_length": strconv.Itoa(max)},
	}
}

func NewInvalidAmountError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount: %s", reason),
	}
}

func NewInvalidTransactionReferenceError(raw string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransactionReference,
		Message: fmt.Sprintf("transaction reference must be 8-32 alphanumeric characters, got: %q", raw),
		Details: map[string]string{"transaction_reference": raw},
	}
}

func NewInvalidPaymentMethodError(raw string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidPaymentMethod,
		Message: fmt.Sprintf("invalid payment method: %s", raw),
		Details: map[string]string{"payment_method": raw},
	}
}

func NewInvalidPaymentStatusError(raw string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidPaymentStatus,
		Message: fmt.Sprintf("invalid payment status: %s", raw),
		Details: map[string]string{"payment_status": raw},
	}
}

func NewClaimNotFoundError(claimID int64) *DomainError {
	id := strconv.FormatInt(claimID, 10)
	return &DomainError{
		Code:    ErrCodeClaimNotFound,
		Message: fmt.Sprintf("claim not found with ID: %s", id),
		Details: map[string]string{"claim_id": id},
	}
}

func NewClaimNotApprovedError(claimID int64, status ClaimStatus) *DomainError {
	id := strconv.FormatInt(claimID, 10)
	return &DomainError{
		Code:    ErrCodeClaimNotApproved,
		Message: fmt.Sprintf("claim %s is not approved (status %s)", id, status),
		Details: map[string]string{"claim_id": id, "claim_status": string(status)},
	}
}

func NewDuplicateTransactionReferenceError(reference string) *DomainError {
	return &DomainError{
		Code:    ErrCodeDuplicateTransactionReference,
		Message: fmt.Sprintf("transaction reference %s already exists", reference),
		Details: map[string]string{"transaction_reference": reference},
	}
}

func NewPaymentExceedsClaimAmountError(payment, claimed MoneyAmount) *DomainError {
	return &DomainError{
		Code: ErrCodePaymentExceedsClaimAmount,
		Message: fmt.Sprintf("payment amount (%s) cannot exceed claim amount (%s)",
			payment, claimed),
		Details: map[string]string{
			"payment_amount": payment.String(),
			"claim_amount":   claimed.String(),
		},
	}
}

func NewIllegalStateTransitionError(from, to PaymentStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeIllegalStateTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		Details: map[string]string{"from": string(from), "to": string(to)},
	}
}

func NewPaymentNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentNotFound,
		Message: fmt.Sprintf("payment with ID %s not found", id),
		Details: map[string]string{"payment_id": id},
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// AsDomainError extracts the first DomainError in err's chain.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	ok := errors.As(err, &domainErr)
	return domainErr, ok
}
