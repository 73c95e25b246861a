package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"

	"github.com/google/uuid"
)

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	accountRepo  ports.AccountRepository
	userRepo     ports.UserRepository
	feedbackRepo ports.FeedbackRepository
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(
	accountRepo ports.AccountRepository,
	userRepo ports.UserRepository,
	feedbackRepo ports.FeedbackRepository,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		accountRepo:  accountRepo,
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
	}
}

// Create opens a new account for a user. New accounts always start with a
// zero balance; money only ever enters through the transfer engine.
func (s *AccountServiceImpl) Create(ctx context.Context, req ports.CreateAccountRequest) (*domain.Account, error) {
	if req.Number == "" {
		return nil, apperror.MissingField("accountNumber")
	}
	if req.BankName == "" {
		return nil, apperror.MissingField("bankName")
	}

	existing, err := s.accountRepo.GetByNumber(ctx, req.Number)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check account number: %w", err))
	}
	if existing != nil {
		return nil, apperror.Validation("account number already in use")
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uuid.New(),
		Number:    req.Number,
		BankName:  req.BankName,
		BankCode:  req.BankCode,
		UserID:    req.UserID,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create account: %w", err))
	}

	return account, nil
}

// ListByUser returns all accounts owned by the user.
func (s *AccountServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return accounts, nil
}

// GetBalance returns the current balance of an account.
func (s *AccountServiceImpl) GetBalance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return 0, apperror.InternalError(err)
	}
	if account == nil {
		return 0, apperror.ErrAccountNotFound()
	}
	return account.Balance, nil
}

// RandomPayee picks one account not owned by the user, for the "pay
// someone" suggestion screen.
func (s *AccountServiceImpl) RandomPayee(ctx context.Context, userID uuid.UUID) (*ports.PayeeInfo, error) {
	others, err := s.accountRepo.ListOthers(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if len(others) == 0 {
		return nil, apperror.ErrAccountNotFound()
	}

	picked := others[rand.IntN(len(others))]
	return s.payeeInfo(ctx, &picked)
}

// LookupPayee resolves an account number to its public payee view. A
// user's own account is not a payee.
func (s *AccountServiceImpl) LookupPayee(ctx context.Context, accountNumber string, userID uuid.UUID) (*ports.PayeeInfo, error) {
	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if account == nil || account.OwnedBy(userID) {
		return nil, apperror.ErrAccountNotFound()
	}
	return s.payeeInfo(ctx, account)
}

// UPIQRCode renders the UPI deep link for collecting into an account.
func (s *AccountServiceImpl) UPIQRCode(ctx context.Context, accountID uuid.UUID) (string, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return "", apperror.InternalError(err)
	}
	if account == nil {
		return "", apperror.ErrAccountNotFound()
	}

	holder, err := s.userRepo.GetByID(ctx, account.UserID)
	if err != nil {
		return "", apperror.InternalError(err)
	}
	name := ""
	if holder != nil {
		name = holder.Name
	}

	return domain.UPIQRPayload(account.Number, name, account.ID), nil
}

// CreateReceiveRequest records a collect request with its QR payload.
func (s *AccountServiceImpl) CreateReceiveRequest(ctx context.Context, req ports.ReceiveRequestInput) (*domain.ReceiveRequest, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be greater than zero")
	}

	account, err := s.accountRepo.GetByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}
	if !account.OwnedBy(req.UserID) {
		return nil, apperror.ErrOwnershipMismatch()
	}

	request := &domain.ReceiveRequest{
		ID:            uuid.New(),
		UserID:        req.UserID,
		AccountNumber: req.AccountNumber,
		Amount:        req.Amount,
		QRCode:        domain.ReceiveQRPayload(req.AccountNumber, req.Amount),
		Status:        domain.ReceivePending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.feedbackRepo.CreateReceiveRequest(ctx, request); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create receive request: %w", err))
	}

	return request, nil
}

// payeeInfo builds the public view of someone else's account.
func (s *AccountServiceImpl) payeeInfo(ctx context.Context, account *domain.Account) (*ports.PayeeInfo, error) {
	holder, err := s.userRepo.GetByID(ctx, account.UserID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	name := ""
	if holder != nil {
		name = holder.Name
	}
	return &ports.PayeeInfo{
		AccountNumber: account.Number,
		HolderName:    name,
	}, nil
}
