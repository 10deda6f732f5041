package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

// MoneyAmount is a strictly positive monetary value held at two decimal places.
type MoneyAmount struct {
	value decimal.Decimal
}

// NewMoneyAmount rejects zero and negative values and rounds half-up to cents.
func NewMoneyAmount(value decimal.Decimal) (MoneyAmount, error) {
	if !value.IsPositive() {
		return MoneyAmount{}, NewInvalidAmountError("must be positive, got: " + value.String())
	}
	// Round is half away from zero, which is half-up for positive values.
	rounded := value.Round(moneyScale)
	if !rounded.IsPositive() {
		return MoneyAmount{}, NewInvalidAmountError("rounds to zero: " + value.String())
	}
	return MoneyAmount{value: rounded}, nil
}

// ParseMoneyAmount builds a MoneyAmount from its decimal text. An empty string
// is treated as a missing amount.
func ParseMoneyAmount(raw string) (MoneyAmount, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return MoneyAmount{}, NewInvalidAmountError("amount cannot be null")
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return MoneyAmount{}, NewInvalidAmountError("not a decimal: " + raw)
	}
	return NewMoneyAmount(value)
}

// NewMoneyAmountFromPtr treats a nil value as a missing amount.
func NewMoneyAmountFromPtr(value *decimal.Decimal) (MoneyAmount, error) {
	if value == nil {
		return MoneyAmount{}, NewInvalidAmountError("amount cannot be null")
	}
	return NewMoneyAmount(*value)
}

func (m MoneyAmount) Decimal() decimal.Decimal {
	return m.value
}

func (m MoneyAmount) IsZero() bool {
	return m.value.IsZero()
}

func (m MoneyAmount) GreaterThan(other MoneyAmount) bool {
	return m.value.GreaterThan(other.value)
}

func (m MoneyAmount) LessThanOrEqual(other MoneyAmount) bool {
	return m.value.LessThanOrEqual(other.value)
}

// Equal compares numerically, so 10.5 and 10.50 are equal.
func (m MoneyAmount) Equal(other MoneyAmount) bool {
	return m.value.Equal(other.value)
}

// String always renders two fractional digits.
func (m MoneyAmount) String() string {
	return m.value.StringFixed(moneyScale)
}

var transactionReferencePattern = regexp.MustCompile(`^[A-Z0-9]{8,32}$`)

// TransactionReference is the caller-supplied external identifier of a payment,
// stored trimmed and upper-cased.
type TransactionReference struct {
	value string
}

// NormalizeTransactionReference applies the same trimming and upper-casing as
// NewTransactionReference without validating the result.
func NormalizeTransactionReference(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func NewTransactionReference(raw string) (TransactionReference, error) {
	if strings.TrimSpace(raw) == "" {
		return TransactionReference{}, &DomainError{
			Code:    ErrCodeInvalidTransactionReference,
			Message: "transaction reference cannot be null or blank",
		}
	}
	normalized := NormalizeTransactionReference(raw)
	if !transactionReferencePattern.MatchString(normalized) {
		return TransactionReference{}, NewInvalidTransactionReferenceError(raw)
	}
	return TransactionReference{value: normalized}, nil
}

func (r TransactionReference) String() string {
	return r.value
}

func (r TransactionReference) IsZero() bool {
	return r.value == ""
}

// PaymentMethod is the instrument used to disburse a payment.
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheck        PaymentMethod = "CHECK"
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodCash         PaymentMethod = "CASH"
)

var paymentMethods = []PaymentMethod{MethodBankTransfer, MethodCheck, MethodCreditCard, MethodCash}

// ParsePaymentMethod matches raw case-insensitively against the known methods.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	candidate := PaymentMethod(strings.ToUpper(strings.TrimSpace(raw)))
	for _, m := range paymentMethods {
		if m == candidate {
			return m, nil
		}
	}
	return "", NewInvalidPaymentMethodError(raw)
}

func (m PaymentMethod) DisplayName() string {
	switch m {
	case MethodBankTransfer:
		return "Bank Transfer"
	case MethodCheck:
		return "Check"
	case MethodCreditCard:
		return "Credit Card"
	case MethodCash:
		return "Cash"
	default:
		return string(m)
	}
}
