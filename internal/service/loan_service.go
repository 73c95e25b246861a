package service

import (
	"context"
	"fmt"
	"time"

	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LoanServiceImpl implements ports.LoanService. The one-active-application
// rule is enforced by a durable singleton slot row claimed inside the
// loan-creation transaction, so two racing applications cannot both win.
type LoanServiceImpl struct {
	loanRepo    ports.LoanRepository
	accountRepo ports.AccountRepository
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewLoanService creates a new LoanServiceImpl.
func NewLoanService(
	loanRepo ports.LoanRepository,
	accountRepo ports.AccountRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LoanServiceImpl {
	return &LoanServiceImpl{
		loanRepo:    loanRepo,
		accountRepo: accountRepo,
		transactor:  transactor,
		log:         log,
	}
}

// Instructions returns the bank's fixed loan terms text.
func (s *LoanServiceImpl) Instructions() string {
	return domain.LoanTerms
}

// HasActiveLoan reports whether the global application slot is taken.
func (s *LoanServiceImpl) HasActiveLoan(ctx context.Context) (bool, error) {
	taken, err := s.loanRepo.GlobalSlotTaken(ctx)
	if err != nil {
		return false, apperror.InternalError(err)
	}
	return taken, nil
}

// Apply files a loan application against an account.
func (s *LoanServiceImpl) Apply(ctx context.Context, req ports.LoanApplication) (*domain.Loan, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be greater than zero")
	}
	if req.Amount > domain.LoanMaxAmount {
		return nil, apperror.ErrLoanLimitExceeded()
	}

	account, err := s.accountRepo.GetByID(ctx, req.AccountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	existing, err := s.loanRepo.GetByAccountID(ctx, req.AccountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check existing loan: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrLoanExistsOnAccount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	claimed, err := s.loanRepo.ClaimGlobalSlot(ctx, dbTx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("claim loan slot: %w", err))
	}
	if !claimed {
		return nil, apperror.ErrLoanAlreadyActive()
	}

	loan := &domain.Loan{
		ID:           uuid.New(),
		AccountID:    req.AccountID,
		Amount:       req.Amount,
		InterestRate: domain.LoanInterestRate,
		TermMonths:   domain.LoanTermMonths,
		Terms:        domain.LoanTerms,
		Status:       domain.LoanStatusApplied,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.loanRepo.Create(ctx, dbTx, loan); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create loan: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("loan_id", loan.ID.String()).
		Str("account_id", req.AccountID.String()).
		Int64("amount", req.Amount).
		Msg("loan application filed")

	return loan, nil
}
