package service

import (
	"context"
	"testing"

	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type loanTestDeps struct {
	svc         *LoanServiceImpl
	loanRepo    *mocks.MockLoanRepository
	accountRepo *mocks.MockAccountRepository
	transactor  *mocks.MockDBTransactor
	ctrl        *gomock.Controller
}

func setupLoanService(t *testing.T) *loanTestDeps {
	ctrl := gomock.NewController(t)
	d := &loanTestDeps{
		loanRepo:    mocks.NewMockLoanRepository(ctrl),
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewLoanService(d.loanRepo, d.accountRepo, d.transactor, zerolog.Nop())
	return d
}

func TestLoanService_Instructions(t *testing.T) {
	d := setupLoanService(t)
	defer d.ctrl.Finish()

	assert.Equal(t, domain.LoanTerms, d.svc.Instructions())
}

func TestLoanService_Apply_Success(t *testing.T) {
	d := setupLoanService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	req := ports.LoanApplication{AccountID: accountID, Amount: 50_000_00}

	d.accountRepo.EXPECT().GetByID(ctx, accountID).Return(&domain.Account{ID: accountID}, nil)
	d.loanRepo.EXPECT().GetByAccountID(ctx, accountID).Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.loanRepo.EXPECT().ClaimGlobalSlot(ctx, tx).Return(true, nil)
	d.loanRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, loan *domain.Loan) error {
			assert.Equal(t, domain.LoanStatusApplied, loan.Status)
			assert.Equal(t, domain.LoanInterestRate, loan.InterestRate)
			assert.Equal(t, domain.LoanTermMonths, loan.TermMonths)
			return nil
		})

	loan, err := d.svc.Apply(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, accountID, loan.AccountID)
	assert.Equal(t, int64(50_000_00), loan.Amount)
}

func TestLoanService_Apply_SlotAlreadyTaken(t *testing.T) {
	d := setupLoanService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.accountRepo.EXPECT().GetByID(ctx, accountID).Return(&domain.Account{ID: accountID}, nil)
	d.loanRepo.EXPECT().GetByAccountID(ctx, accountID).Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.loanRepo.EXPECT().ClaimGlobalSlot(ctx, tx).Return(false, nil)

	_, err := d.svc.Apply(ctx, ports.LoanApplication{AccountID: accountID, Amount: 10_000_00})
	assertAppError(t, err, "LOAN_001")
}

func TestLoanService_Apply_ExistingLoanOnAccount(t *testing.T) {
	d := setupLoanService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()

	d.accountRepo.EXPECT().GetByID(ctx, accountID).Return(&domain.Account{ID: accountID}, nil)
	d.loanRepo.EXPECT().GetByAccountID(ctx, accountID).Return(&domain.Loan{ID: uuid.New()}, nil)

	_, err := d.svc.Apply(ctx, ports.LoanApplication{AccountID: accountID, Amount: 10_000_00})
	assertAppError(t, err, "LOAN_002")
}

func TestLoanService_Apply_OverLimit(t *testing.T) {
	d := setupLoanService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Apply(context.Background(), ports.LoanApplication{
		AccountID: uuid.New(),
		Amount:    domain.LoanMaxAmount + 1,
	})
	assertAppError(t, err, "LOAN_003")
}

func TestLoanService_Apply_AccountNotFound(t *testing.T) {
	d := setupLoanService(t)
	defer d.ctrl.Finish()

	accountID := uuid.New()
	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).Return(nil, nil)

	_, err := d.svc.Apply(context.Background(), ports.LoanApplication{AccountID: accountID, Amount: 10_00})
	assertAppError(t, err, "TRF_001")
}

func TestLoanService_HasActiveLoan(t *testing.T) {
	d := setupLoanService(t)
	defer d.ctrl.Finish()

	d.loanRepo.EXPECT().GlobalSlotTaken(gomock.Any()).Return(true, nil)

	taken, err := d.svc.HasActiveLoan(context.Background())
	require.NoError(t, err)
	assert.True(t, taken)
}
