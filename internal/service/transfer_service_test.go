package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/internal/core/ports/mocks"
	"mobile-banking-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type transferTestDeps struct {
	svc         *TransferServiceImpl
	accountRepo *mocks.MockAccountRepository
	txRepo      *mocks.MockTransactionRepository
	billingRepo *mocks.MockBillingRepository
	idempRepo   *mocks.MockIdempotencyRepository
	idempCache  *mocks.MockIdempotencyCache
	transactor  *mocks.MockDBTransactor
	ctrl        *gomock.Controller
}

func setupTransferService(t *testing.T) *transferTestDeps {
	ctrl := gomock.NewController(t)
	d := &transferTestDeps{
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		billingRepo: mocks.NewMockBillingRepository(ctrl),
		idempRepo:   mocks.NewMockIdempotencyRepository(ctrl),
		idempCache:  mocks.NewMockIdempotencyCache(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		ctrl:        ctrl,
	}
	// No tx deadline in unit tests; the deadline path has dedicated tests.
	d.svc = NewTransferService(
		d.accountRepo, d.txRepo, d.billingRepo,
		d.idempRepo, d.idempCache, d.transactor, 0, zerolog.Nop(),
	)
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// failingCommitTx fails at commit time, as an expired transaction does.
type failingCommitTx struct {
	pgx.Tx
	err error
}

func (m *failingCommitTx) Rollback(_ context.Context) error { return nil }
func (m *failingCommitTx) Commit(_ context.Context) error   { return m.err }

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

// Fixed IDs so the lock order in two-account tests is deterministic.
var (
	lowAccountID  = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highAccountID = uuid.MustParse("ffffffff-ffff-ffff-ffff-fffffffffffe")
)

func account(id, userID uuid.UUID, number string, balance int64) *domain.Account {
	return &domain.Account{
		ID:      id,
		Number:  number,
		UserID:  userID,
		Balance: balance,
	}
}

func TestTransferService_Apply_SelfTransfer(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}
	to := "2222222222"

	src := account(lowAccountID, userID, "1111111111", 120_00)
	dst := account(highAccountID, userID, to, 30_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		ToAccountNumber:   &to,
		Amount:            20_00,
		Kind:              domain.KindSelfTransfer,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.accountRepo.EXPECT().GetByNumber(ctx, to).Return(dst, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// source has the smaller ID, so it is locked first
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, src.ID).Return(src, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, dst.ID).Return(dst, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, src.ID, int64(120_00), int64(100_00)).Return(nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, dst.ID, int64(30_00), int64(50_00)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.svc.Apply(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.KindSelfTransfer, result.Kind)
	assert.Equal(t, domain.StatusCompleted, result.Status)
	assert.Equal(t, int64(20_00), result.Amount)
	assert.Equal(t, src.ID, *result.FromAccountID)
	assert.Equal(t, dst.ID, *result.ToAccountID)
}

func TestTransferService_Apply_LockOrderIsAscending(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}
	to := "2222222222"

	// Source carries the HIGHER ID, so destination must be locked first.
	src := account(highAccountID, userID, "1111111111", 120_00)
	dst := account(lowAccountID, uuid.New(), to, 30_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		ToAccountNumber:   &to,
		Amount:            20_00,
		Kind:              domain.KindTransferToOthers,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.accountRepo.EXPECT().GetByNumber(ctx, to).Return(dst, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	gomock.InOrder(
		d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, dst.ID).Return(dst, nil),
		d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, src.ID).Return(src, nil),
	)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, src.ID, int64(120_00), int64(100_00)).Return(nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, dst.ID, int64(30_00), int64(50_00)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	_, err := d.svc.Apply(ctx, req)
	require.NoError(t, err)
}

func TestTransferService_Apply_UPI(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}
	upiID := "merchant@upi"

	src := account(lowAccountID, userID, "1111111111", 100_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            40_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, src.ID).Return(src, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, src.ID, int64(100_00), int64(60_00)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, txn *domain.Transaction) error {
			assert.Nil(t, txn.ToAccountID, "one-sided debit has no destination")
			assert.Equal(t, upiID, *txn.UPIID)
			return nil
		})

	result, err := d.svc.Apply(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, domain.KindUPI, result.Kind)
}

func TestTransferService_Apply_BillPayment_WritesBillingRecord(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}
	bt := domain.BillingElectricity
	customerID := "CUST-42"

	src := account(lowAccountID, userID, "1111111111", 500_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            150_00,
		Kind:              domain.KindBillPayment,
		BillingType:       &bt,
		CustomerID:        &customerID,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, src.ID).Return(src, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, src.ID, int64(500_00), int64(350_00)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.billingRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, record *domain.BillingRecord) error {
			assert.Equal(t, domain.BillingElectricity, record.BillingType)
			assert.Equal(t, customerID, *record.CustomerID)
			assert.Equal(t, int64(150_00), record.Amount)
			return nil
		})

	_, err := d.svc.Apply(ctx, req)
	require.NoError(t, err)
}

func TestTransferService_Apply_BillPayment_MissingCategoryField(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	bt := domain.BillingElectricity
	req := ports.TransferRequest{
		UserID:            uuid.New(),
		FromAccountNumber: "1111111111",
		Amount:            150_00,
		Kind:              domain.KindBillPayment,
		BillingType:       &bt,
		// customerId absent: the whole transfer is rejected, nothing persisted
	}

	_, err := d.svc.Apply(context.Background(), req)
	assertAppError(t, err, "VAL_001")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "customerId", appErr.Field)
}

func TestTransferService_Apply_InsufficientFunds(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}
	upiID := "merchant@upi"

	src := account(lowAccountID, userID, "1111111111", 10_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            40_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, src.ID).Return(src, nil)

	_, err := d.svc.Apply(ctx, req)
	assertAppError(t, err, "TRF_002")
}

func TestTransferService_Apply_SourceNotFound(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	upiID := "merchant@upi"
	req := ports.TransferRequest{
		UserID:            uuid.New(),
		FromAccountNumber: "0000000000",
		Amount:            10_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, "0000000000").Return(nil, nil)

	_, err := d.svc.Apply(ctx, req)
	assertAppError(t, err, "TRF_001")
}

func TestTransferService_Apply_OwnershipMismatch(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	upiID := "merchant@upi"
	src := account(lowAccountID, uuid.New(), "1111111111", 100_00) // someone else's account

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            10_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)

	_, err := d.svc.Apply(ctx, req)
	assertAppError(t, err, "TRF_003")
}

func TestTransferService_Apply_SelfTransferToForeignAccount(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	to := "2222222222"

	src := account(lowAccountID, userID, "1111111111", 100_00)
	dst := account(highAccountID, uuid.New(), to, 0) // owned by a different user

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		ToAccountNumber:   &to,
		Amount:            10_00,
		Kind:              domain.KindSelfTransfer,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.accountRepo.EXPECT().GetByNumber(ctx, to).Return(dst, nil)

	_, err := d.svc.Apply(ctx, req)
	assertAppError(t, err, "TRF_003")
}

func TestTransferService_Apply_StaleBalanceIsConflict(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}
	upiID := "merchant@upi"

	src := account(lowAccountID, userID, "1111111111", 100_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            40_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, src.ID).Return(src, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, src.ID, int64(100_00), int64(60_00)).
		Return(domain.ErrStaleBalance)

	_, err := d.svc.Apply(ctx, req)
	assertAppError(t, err, "TRF_005")
}

func TestTransferService_Apply_UnsupportedKind(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	req := ports.TransferRequest{
		UserID:            uuid.New(),
		FromAccountNumber: "1111111111",
		Amount:            10_00,
		Kind:              domain.TransactionKind("WIRE"),
	}

	_, err := d.svc.Apply(context.Background(), req)
	assertAppError(t, err, "TRF_004")
}

func TestTransferService_Apply_IdempotentReplay_CacheHit(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	token := "transfer-001"
	upiID := "merchant@upi"
	idempKey := domain.BuildIdempotencyKey(userID, token)

	original := &domain.Transaction{
		ID:     uuid.New(),
		UserID: userID,
		Kind:   domain.KindUPI,
		Amount: 40_00,
		Status: domain.StatusCompleted,
	}
	cached, err := json.Marshal(original)
	require.NoError(t, err)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: "1111111111",
		Amount:            40_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
		IdempotencyKey:    &token,
	}

	// Cache hit short-circuits everything: no account reads, no tx
	d.idempCache.EXPECT().Get(ctx, idempKey).Return(cached, nil)

	result, err := d.svc.Apply(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, original.ID, result.ID)
	assert.Equal(t, original.Amount, result.Amount)
}

func TestTransferService_Apply_IdempotentReplay_DBHit(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	token := "transfer-002"
	upiID := "merchant@upi"
	idempKey := domain.BuildIdempotencyKey(userID, token)

	original := &domain.Transaction{
		ID:     uuid.New(),
		UserID: userID,
		Kind:   domain.KindUPI,
		Amount: 40_00,
		Status: domain.StatusCompleted,
	}
	respJSON, err := json.Marshal(original)
	require.NoError(t, err)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: "1111111111",
		Amount:            40_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
		IdempotencyKey:    &token,
	}

	d.idempCache.EXPECT().Get(ctx, idempKey).Return(nil, nil)
	d.idempRepo.EXPECT().Get(ctx, idempKey).Return(&domain.IdempotencyLog{
		Key:           idempKey,
		TransactionID: original.ID,
		ResponseJSON:  respJSON,
	}, nil)

	result, err := d.svc.Apply(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, original.ID, result.ID)
}

func TestTransferService_Apply_WithIdempotencyKey_PersistsLog(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	token := "transfer-003"
	tx := &mockTx{}
	upiID := "merchant@upi"
	idempKey := domain.BuildIdempotencyKey(userID, token)

	src := account(lowAccountID, userID, "1111111111", 100_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            40_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
		IdempotencyKey:    &token,
	}

	d.idempCache.EXPECT().Get(ctx, idempKey).Return(nil, nil)
	d.idempRepo.EXPECT().Get(ctx, idempKey).Return(nil, nil)
	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, src.ID).Return(src, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, src.ID, int64(100_00), int64(60_00)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.idempRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, log *domain.IdempotencyLog) error {
			assert.Equal(t, idempKey, log.Key)
			assert.NotEmpty(t, log.ResponseJSON)
			return nil
		})
	d.idempCache.EXPECT().Set(ctx, idempKey, gomock.Any(), idempotencyTTL).Return(nil)

	_, err := d.svc.Apply(ctx, req)
	require.NoError(t, err)
}

func TestTransferService_Apply_BeginFailure(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	upiID := "merchant@upi"
	src := account(lowAccountID, userID, "1111111111", 100_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            40_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.transactor.EXPECT().Begin(ctx).Return(nil, errors.New("pool exhausted"))

	_, err := d.svc.Apply(ctx, req)
	assertAppError(t, err, "SYS_001")
}

func TestTransferService_Apply_BillPayment_DropsNonMatchingFields(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}
	bt := domain.BillingRent
	propertyName := "APT-7"
	customerID := "CUST-42"
	rrNumber := "RR-99"

	src := account(lowAccountID, userID, "1111111111", 500_00)

	// A RENT payment carrying extraneous category fields
	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            150_00,
		Kind:              domain.KindBillPayment,
		BillingType:       &bt,
		PropertyName:      &propertyName,
		CustomerID:        &customerID,
		RRNumber:          &rrNumber,
	}

	d.accountRepo.EXPECT().GetByNumber(ctx, src.Number).Return(src, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, src.ID).Return(src, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, src.ID, int64(500_00), int64(350_00)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.billingRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, record *domain.BillingRecord) error {
			assert.Equal(t, propertyName, *record.PropertyName)
			assert.Nil(t, record.CustomerID, "only the RENT field may be persisted")
			assert.Nil(t, record.RRNumber, "only the RENT field may be persisted")
			return nil
		})

	_, err := d.svc.Apply(ctx, req)
	require.NoError(t, err)
}

func TestTransferService_Apply_LockWaitDeadlineIsConflict(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()
	d.svc.txTimeout = 50 * time.Millisecond

	userID := uuid.New()
	tx := &mockTx{}
	upiID := "merchant@upi"
	src := account(lowAccountID, userID, "1111111111", 100_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            40_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
	}

	d.accountRepo.EXPECT().GetByNumber(gomock.Any(), src.Number).Return(src, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).DoAndReturn(
		func(txCtx context.Context) (pgx.Tx, error) {
			_, bounded := txCtx.Deadline()
			assert.True(t, bounded, "transaction context must carry a deadline")
			return tx, nil
		})
	// A contended FOR UPDATE that outlives the deadline
	d.accountRepo.EXPECT().GetByIDForUpdate(gomock.Any(), tx, src.ID).
		Return(nil, fmt.Errorf("acquire row lock: %w", context.DeadlineExceeded))

	_, err := d.svc.Apply(context.Background(), req)
	assertAppError(t, err, "TRF_005")
}

func TestTransferService_Apply_CommitDeadlineIsConflict(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()
	d.svc.txTimeout = 50 * time.Millisecond

	userID := uuid.New()
	upiID := "merchant@upi"
	src := account(lowAccountID, userID, "1111111111", 100_00)

	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: src.Number,
		Amount:            40_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
	}

	tx := &failingCommitTx{err: context.DeadlineExceeded}
	d.accountRepo.EXPECT().GetByNumber(gomock.Any(), src.Number).Return(src, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(gomock.Any(), tx, src.ID).Return(src, nil)
	d.accountRepo.EXPECT().UpdateBalance(gomock.Any(), tx, src.ID, int64(100_00), int64(60_00)).Return(nil)
	d.txRepo.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(nil)

	_, err := d.svc.Apply(context.Background(), req)
	assertAppError(t, err, "TRF_005")
}

func TestTransferService_Apply_IdempotencyKeyReuse_DifferentRequest(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	token := "transfer-004"
	upiID := "merchant@upi"
	idempKey := domain.BuildIdempotencyKey(userID, token)

	original := &domain.Transaction{
		ID:     uuid.New(),
		UserID: userID,
		Kind:   domain.KindUPI,
		Amount: 40_00,
		Status: domain.StatusCompleted,
	}
	cached, err := json.Marshal(original)
	require.NoError(t, err)

	// Same key, different amount: must be rejected, not silently replayed
	req := ports.TransferRequest{
		UserID:            userID,
		FromAccountNumber: "1111111111",
		Amount:            50_00,
		Kind:              domain.KindUPI,
		UPIID:             &upiID,
		IdempotencyKey:    &token,
	}

	d.idempCache.EXPECT().Get(ctx, idempKey).Return(cached, nil)

	_, err = d.svc.Apply(ctx, req)
	assertAppError(t, err, "TRF_007")
}
