package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/application/services"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/DanielPopoola/claimpay/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/claimpay/internal/infrastructure/persistence/postgres/testhelpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PostgresStoreTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	store  *postgres.PaymentStore
	claims *postgres.ClaimLookup
	uow    *postgres.TransactionCoordinator
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreTestSuite))
}

func (suite *PostgresStoreTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.store = postgres.NewPaymentStore(suite.testDB.DB)
	suite.claims = postgres.NewClaimLookup(suite.testDB.DB)
	suite.uow = postgres.NewTransactionCoordinator(suite.testDB.DB)
}

func (suite *PostgresStoreTestSuite) TearDownSuite() {
	if suite.testDB != nil {
		suite.testDB.Cleanup(suite.T())
	}
}

func (suite *PostgresStoreTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *PostgresStoreTestSuite) Test_SaveAndFind() {
	t := suite.T()
	ctx := context.Background()
	claimID := suite.testDB.InsertClaim(t, domain.ClaimApproved, "10000.00")

	payment := testhelpers.NewPendingPayment(t, claimID, "5000.005")
	saved, err := suite.store.Save(ctx, payment)
	require.NoError(t, err)
	require.Positive(t, saved.ID())

	found, err := suite.store.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), found.ID())
	assert.Equal(t, claimID, found.ClaimID())
	assert.Equal(t, "5000.01", found.Amount().String())
	assert.Equal(t, domain.StatusPending, found.Status())
	assert.Equal(t, payment.Reference(), found.Reference())
	assert.Equal(t, payment.PaymentDate(), found.PaymentDate().UTC())
	assert.Equal(t, "integration", found.Notes())

	exists, err := suite.store.ExistsByTransactionReference(ctx, payment.Reference().String())
	require.NoError(t, err)
	assert.True(t, exists)

	byRef, err := suite.store.FindByTransactionReference(ctx, payment.Reference().String())
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), byRef.ID())
}

func (suite *PostgresStoreTestSuite) Test_FindByID_NotFound() {
	_, err := suite.store.FindByID(context.Background(), 999)

	assert.ErrorIs(suite.T(), err, domain.ErrPaymentNotFound)
}

func (suite *PostgresStoreTestSuite) Test_Save_DuplicateReferenceTranslated() {
	t := suite.T()
	ctx := context.Background()
	claimID := suite.testDB.InsertClaim(t, domain.ClaimApproved, "10000.00")
	ref := testhelpers.UniqueReference()

	_, err := suite.store.Save(ctx, testhelpers.NewPaymentWith(t, claimID, "10", ref, domain.StatusPending, time.Now()))
	require.NoError(t, err)

	_, err = suite.store.Save(ctx, testhelpers.NewPaymentWith(t, claimID, "20", ref, domain.StatusPending, time.Now()))

	assert.ErrorIs(t, err, domain.ErrDuplicateTransactionReference)
}

func (suite *PostgresStoreTestSuite) Test_Queries() {
	t := suite.T()
	ctx := context.Background()
	claimA := suite.testDB.InsertClaim(t, domain.ClaimApproved, "10000.00")
	claimB := suite.testDB.InsertClaim(t, domain.ClaimApproved, "10000.00")
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	fixtures := []*domain.Payment{
		testhelpers.NewPaymentWith(t, claimA, "100", testhelpers.UniqueReference(), domain.StatusCompleted, day.AddDate(0, 0, -1)),
		testhelpers.NewPaymentWith(t, claimA, "200", testhelpers.UniqueReference(), domain.StatusCompleted, day.AddDate(0, 0, 1)),
		testhelpers.NewPaymentWith(t, claimB, "300", testhelpers.UniqueReference(), domain.StatusPending, day.AddDate(0, 0, 2)),
		testhelpers.NewPaymentWith(t, claimB, "400", testhelpers.UniqueReference(), domain.StatusCompleted, day),
	}
	for _, p := range fixtures {
		_, err := suite.store.Save(ctx, p)
		require.NoError(t, err)
	}

	byClaim, err := suite.store.FindByClaimID(ctx, claimA)
	require.NoError(t, err)
	assert.Len(t, byClaim, 2)

	completed, err := suite.store.FindByStatus(ctx, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 3)

	all, err := suite.store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	after, err := suite.store.FindCompletedAfter(ctx, day)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "200.00", after[0].Amount().String())
}

func (suite *PostgresStoreTestSuite) Test_ClaimLookup() {
	t := suite.T()
	ctx := context.Background()
	id := suite.testDB.InsertClaim(t, domain.ClaimUnderReview, "750.50")

	claim, err := suite.claims.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimUnderReview, claim.Status)
	assert.Equal(t, "750.50", claim.ClaimedAmount.String())

	missing, err := suite.claims.FindByID(ctx, id+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func (suite *PostgresStoreTestSuite) Test_WithinTx_RollsBackOnError() {
	t := suite.T()
	ctx := context.Background()
	claimID := suite.testDB.InsertClaim(t, domain.ClaimApproved, "10000.00")
	payment := testhelpers.NewPendingPayment(t, claimID, "10")

	err := suite.uow.WithinTx(ctx, func(ctx context.Context, _ application.ClaimLookup, payments application.PaymentStore) error {
		if _, err := payments.Save(ctx, payment); err != nil {
			return err
		}
		return domain.NewPaymentExceedsClaimAmountError(payment.Amount(), payment.Amount())
	})

	assert.ErrorIs(t, err, domain.ErrPaymentExceedsClaimAmount)
	exists, err := suite.store.ExistsByTransactionReference(ctx, payment.Reference().String())
	require.NoError(t, err)
	assert.False(t, exists)
}

func (suite *PostgresStoreTestSuite) Test_Transition_PersistsStatus() {
	t := suite.T()
	ctx := context.Background()
	claimID := suite.testDB.InsertClaim(t, domain.ClaimApproved, "10000.00")
	saved, err := suite.store.Save(ctx, testhelpers.NewPendingPayment(t, claimID, "10"))
	require.NoError(t, err)

	lifecycle := services.NewLifecycleService(suite.uow, nil, discardLogger())

	_, err = lifecycle.MarkAsProcessing(ctx, saved.ID())
	require.NoError(t, err)
	_, err = lifecycle.MarkAsCompleted(ctx, saved.ID())
	require.NoError(t, err)
	_, err = lifecycle.MarkAsFailed(ctx, saved.ID())
	assert.ErrorIs(t, err, domain.ErrIllegalStateTransition)

	found, err := suite.store.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, found.Status())
}

func (suite *PostgresStoreTestSuite) Test_ProcessPayment_EndToEnd() {
	t := suite.T()
	ctx := context.Background()
	claimID := suite.testDB.InsertClaim(t, domain.ClaimApproved, "10000.00")
	service := services.NewProcessPaymentService(suite.uow, nil, discardLogger())
	amount := decimal.RequireFromString("5000.00")

	out, err := service.ProcessPayment(ctx, services.ProcessPaymentInput{
		ClaimID:              claimID,
		Amount:               &amount,
		PaymentMethod:        "BANK_TRANSFER",
		TransactionReference: " txn1234567890",
		ProcessedBy:          "admin@insurance.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, out.Status)
	assert.Equal(t, "TXN1234567890", out.TransactionReference)

	_, err = service.ProcessPayment(ctx, services.ProcessPaymentInput{
		ClaimID:              claimID,
		Amount:               &amount,
		PaymentMethod:        "CASH",
		TransactionReference: "TXN1234567890",
		ProcessedBy:          "admin@insurance.com",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateTransactionReference)
}

func (suite *PostgresStoreTestSuite) Test_ProcessPayment_ConcurrentSameReference() {
	t := suite.T()
	ctx := context.Background()
	claimID := suite.testDB.InsertClaim(t, domain.ClaimApproved, "10000.00")
	service := services.NewProcessPaymentService(suite.uow, nil, discardLogger())
	amount := decimal.RequireFromString("100.00")
	ref := testhelpers.UniqueReference()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.ProcessPayment(ctx, services.ProcessPaymentInput{
				ClaimID:              claimID,
				Amount:               &amount,
				PaymentMethod:        "CHECK",
				TransactionReference: ref,
				ProcessedBy:          "admin@insurance.com",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case domain.IsErrorCode(err, domain.ErrCodeDuplicateTransactionReference):
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, dupes)

	payments, err := suite.store.FindByClaimID(ctx, claimID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
