// Package domain encodes claim payments, their value objects and lifecycle.
package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// PaymentStatus represents the current state of a payment in its lifecycle
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusProcessing PaymentStatus = "PROCESSING"
	StatusCompleted  PaymentStatus = "COMPLETED"
	StatusFailed     PaymentStatus = "FAILED"
	StatusRefunded   PaymentStatus = "REFUNDED"
)

// transitions is the single source of truth for allowed lifecycle moves.
var transitions = map[PaymentStatus][]PaymentStatus{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusRefunded},
	StatusFailed:     {},
	StatusRefunded:   {},
}

// CanTransition reports whether a payment in from may move to to.
func CanTransition(from, to PaymentStatus) bool {
	return slices.Contains(transitions[from], to)
}

// ParsePaymentStatus matches raw case-insensitively against the known statuses.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	candidate := PaymentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := transitions[candidate]; !ok {
		return "", NewInvalidPaymentStatusError(raw)
	}
	return candidate, nil
}

// IsTerminal is true for COMPLETED, FAILED and REFUNDED. COMPLETED can still be refunded.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

func (s PaymentStatus) DisplayName() string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(string(s))
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// Payment is a disbursement recorded against an approved claim
type Payment struct {
	id          int64
	claimID     int64
	amount      MoneyAmount
	method      PaymentMethod
	status      PaymentStatus
	reference   TransactionReference
	paymentDate time.Time
	processedBy string
	notes       string
}

// PaymentParams carries the fields for NewPayment. Status and PaymentDate are
// only set when reconstructing a stored payment; they default to PENDING and
// today otherwise.
type PaymentParams struct {
	ID          int64
	ClaimID     int64
	Amount      MoneyAmount
	Method      PaymentMethod
	Reference   TransactionReference
	ProcessedBy string
	Notes       string
	Status      PaymentStatus
	PaymentDate time.Time
}

func NewPayment(p PaymentParams) (*Payment, error) {
	if p.ClaimID <= 0 {
		return nil, NewInvalidInputError("claim ID")
	}
	if p.Amount.IsZero() {
		return nil, NewInvalidInputError("amount")
	}
	if p.Method == "" {
		return nil, NewInvalidInputError("payment method")
	}
	if p.Reference.IsZero() {
		return nil, NewInvalidInputError("transaction reference")
	}
	if strings.TrimSpace(p.ProcessedBy) == "" {
		return nil, NewInvalidInputError("processed by")
	}

	status := p.Status
	if status == "" {
		status = StatusPending
	}
	if _, ok := transitions[status]; !ok {
		return nil, NewInvalidPaymentStatusError(string(status))
	}

	date := p.PaymentDate
	if date.IsZero() {
		date = Today(time.Now())
	}

	return &Payment{
		id:          p.ID,
		claimID:     p.ClaimID,
		amount:      p.Amount,
		method:      p.Method,
		status:      status,
		reference:   p.Reference,
		paymentDate: Today(date),
		processedBy: p.ProcessedBy,
		notes:       p.Notes,
	}, nil
}

// Today truncates t to its calendar date.
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p *Payment) ID() int64 { return p.id }
func (p *Payment) ClaimID() int64 { return p.claimID }
func (p *Payment) Amount() MoneyAmount { return p.amount }
func (p *Payment) Method() PaymentMethod { return p.method }
func (p *Payment) Status() PaymentStatus { return p.status }
func (p *Payment) Reference() TransactionReference { return p.reference }
func (p *Payment) PaymentDate() time.Time { return p.paymentDate }
func (p *Payment) ProcessedBy() string { return p.processedBy }
func (p *Payment) Notes() string { return p.notes }
func (p *Payment) IsPending() bool { return p.status == StatusPending }
func (p *Payment) IsCompleted() bool { return p.status == StatusCompleted }
func (p *Payment) IsTerminal() bool { return p.status.IsTerminal() }

// WithID returns a copy of the payment carrying the identity assigned by the store.
func (p *Payment) WithID(id int64) (*Payment, error) {
	if id <= 0 {
		return nil, errors.New("payment ID must be positive")
	}
	cp := *p
	cp.id = id
	return &cp, nil
}

func (p *Payment) MarkAsProcessing() error {
	return p.transition(StatusProcessing)
}

func (p *Payment) MarkAsCompleted() error {
	return p.transition(StatusCompleted)
}

func (p *Payment) MarkAsFailed() error {
	return p.transition(StatusFailed)
}

func (p *Payment) MarkAsRefunded() error {
	return p.transition(StatusRefunded)
}

// TransitionTo dispatches to the MarkAs operation for target.
func (p *Payment) TransitionTo(target PaymentStatus) error {
	switch target {
	case StatusProcessing:
		return p.MarkAsProcessing()
	case StatusCompleted:
		return p.MarkAsCompleted()
	case StatusFailed:
		return p.MarkAsFailed()
	case StatusRefunded:
		return p.MarkAsRefunded()
	default:
		return NewIllegalStateTransitionError(p.status, target)
	}
}

func (p *Payment) transition(target PaymentStatus) error {
	if !CanTransition(p.status, target) {
		return NewIllegalStateTransitionError(p.status, target)
	}
	p.status = target
	return nil
}
