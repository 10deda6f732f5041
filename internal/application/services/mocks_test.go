package services_test

import (
	"context"
	"time"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockClaimLookup struct {
	mock.Mock
}

func (m *MockClaimLookup) FindByID(ctx context.Context, id int64) (*domain.Claim, error) {
	args := m.Called(ctx, id)
	claim, _ := args.Get(0).(*domain.Claim)
	return claim, args.Error(1)
}

type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) ExistsByTransactionReference(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentStore) Save(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, payment)
	if fn, ok := args.Get(0).(func(*domain.Payment) (*domain.Payment, error)); ok {
		return fn(payment)
	}
	saved, _ := args.Get(0).(*domain.Payment)
	return saved, args.Error(1)
}

func (m *MockPaymentStore) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	payment, _ := args.Get(0).(*domain.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentStore) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	payment, _ := args.Get(0).(*domain.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentStore) FindByClaimID(ctx context.Context, claimID int64) ([]*domain.Payment, error) {
	args := m.Called(ctx, claimID)
	payments, _ := args.Get(0).([]*domain.Payment)
	return payments, args.Error(1)
}

func (m *MockPaymentStore) FindByStatus(ctx context.Context, status domain.PaymentStatus) ([]*domain.Payment, error) {
	args := m.Called(ctx, status)
	payments, _ := args.Get(0).([]*domain.Payment)
	return payments, args.Error(1)
}

func (m *MockPaymentStore) FindAll(ctx context.Context) ([]*domain.Payment, error) {
	args := m.Called(ctx)
	payments, _ := args.Get(0).([]*domain.Payment)
	return payments, args.Error(1)
}

func (m *MockPaymentStore) FindByTransactionReference(ctx context.Context, reference string) (*domain.Payment, error) {
	args := m.Called(ctx, reference)
	payment, _ := args.Get(0).(*domain.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentStore) FindCompletedAfter(ctx context.Context, date time.Time) ([]*domain.Payment, error) {
	args := m.Called(ctx, date)
	payments, _ := args.Get(0).([]*domain.Payment)
	return payments, args.Error(1)
}

func (m *MockPaymentStore) UpdateStatus(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// fakeUnitOfWork runs fn directly against the mocks and counts commits.
type fakeUnitOfWork struct {
	claims   *MockClaimLookup
	payments *MockPaymentStore
	commits  int
}

func (u *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(context.Context, application.ClaimLookup, application.PaymentStore) error) error {
	if err := fn(ctx, u.claims, u.payments); err != nil {
		return err
	}
	u.commits++
	return nil
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) PaymentProcessed(outcome string, elapsed time.Duration) {
	m.Called(outcome, elapsed)
}

func (m *MockMetrics) PaymentTransitioned(from, to domain.PaymentStatus) {
	m.Called(from, to)
}
