package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const idempotencyTTL = 24 * time.Hour

// TransferServiceImpl implements ports.TransferService: the funds-transfer
// engine. One Apply call performs validation, account resolution, balance
// mutation, and history/billing persistence as a single database commit.
type TransferServiceImpl struct {
	validator   *TransferValidator
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
	billingRepo ports.BillingRepository
	idempRepo   ports.IdempotencyRepository
	idempCache  ports.IdempotencyCache
	transactor  ports.DBTransactor
	txTimeout   time.Duration
	log         zerolog.Logger
}

// NewTransferService creates a new TransferServiceImpl. txTimeout bounds the
// database transaction; zero disables the bound.
func NewTransferService(
	accountRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	billingRepo ports.BillingRepository,
	idempRepo ports.IdempotencyRepository,
	idempCache ports.IdempotencyCache,
	transactor ports.DBTransactor,
	txTimeout time.Duration,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		validator:   NewTransferValidator(),
		accountRepo: accountRepo,
		txRepo:      txRepo,
		billingRepo: billingRepo,
		idempRepo:   idempRepo,
		idempCache:  idempCache,
		transactor:  transactor,
		txTimeout:   txTimeout,
		log:         log,
	}
}

// Apply runs the transfer algorithm. Evaluation order is fixed: structural
// validation, source resolution and ownership, destination resolution and
// ownership, balance sufficiency, then the atomic mutation. Every failure
// leaves all balances and the history ledger untouched.
func (s *TransferServiceImpl) Apply(ctx context.Context, req ports.TransferRequest) (*domain.Transaction, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var idempKey string
	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		idempKey = domain.BuildIdempotencyKey(req.UserID, *req.IdempotencyKey)

		// Layer 1: Redis idempotency check
		cached, err := s.idempCache.Get(ctx, idempKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("redis idempotency check failed, falling through to DB")
		}
		if cached != nil {
			return s.replayTransaction(cached, req)
		}

		// Layer 2: DB idempotency check
		idempLog, err := s.idempRepo.Get(ctx, idempKey)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
		}
		if idempLog != nil {
			return s.replayTransaction(idempLog.ResponseJSON, req)
		}
	}

	// Resolve source account
	source, err := s.accountRepo.GetByNumber(ctx, req.FromAccountNumber)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve source account: %w", err))
	}
	if source == nil {
		return nil, apperror.ErrAccountNotFound()
	}
	if !source.OwnedBy(req.UserID) {
		return nil, apperror.ErrOwnershipMismatch()
	}

	// Resolve destination account for two-sided kinds
	var dest *domain.Account
	if req.Kind.RequiresDestination() {
		dest, err = s.accountRepo.GetByNumber(ctx, *req.ToAccountNumber)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("resolve destination account: %w", err))
		}
		if dest == nil {
			return nil, apperror.ErrAccountNotFound()
		}
		if req.Kind == domain.KindSelfTransfer && !dest.OwnedBy(req.UserID) {
			return nil, apperror.ErrOwnershipMismatch()
		}
	}

	// Begin database transaction. The deadline bounds every statement in
	// it, so a contended row lock cannot stall the request forever; expiry
	// surfaces to the caller as a retryable conflict.
	txCtx := ctx
	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		txCtx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	dbTx, err := s.transactor.Begin(txCtx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock accounts in ascending ID order so two concurrent transfers over
	// the same pair never deadlock, then re-read state under the lock.
	lockOrder := []uuid.UUID{source.ID}
	if dest != nil {
		if bytes.Compare(dest.ID[:], source.ID[:]) < 0 {
			lockOrder = []uuid.UUID{dest.ID, source.ID}
		} else {
			lockOrder = []uuid.UUID{source.ID, dest.ID}
		}
	}

	locked := make(map[uuid.UUID]*domain.Account, len(lockOrder))
	for _, id := range lockOrder {
		acc, err := s.accountRepo.GetByIDForUpdate(txCtx, dbTx, id)
		if err != nil {
			return nil, s.txError("lock account", err)
		}
		if acc == nil {
			return nil, apperror.ErrAccountNotFound()
		}
		locked[id] = acc
	}

	lockedSource := locked[source.ID]
	if !lockedSource.CanDebit(req.Amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	// Mutate balances, guarded by compare-and-swap on the values just read
	if err := s.accountRepo.UpdateBalance(txCtx, dbTx, lockedSource.ID, lockedSource.Balance, lockedSource.Balance-req.Amount); err != nil {
		return nil, s.txError("debit source", err)
	}
	if dest != nil {
		lockedDest := locked[dest.ID]
		if err := s.accountRepo.UpdateBalance(txCtx, dbTx, lockedDest.ID, lockedDest.Balance, lockedDest.Balance+req.Amount); err != nil {
			return nil, s.txError("credit destination", err)
		}
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:            uuid.New(),
		UserID:        req.UserID,
		Kind:          req.Kind,
		FromAccountID: &source.ID,
		Amount:        req.Amount,
		UPIID:         req.UPIID,
		Status:        domain.StatusCompleted,
		CreatedAt:     now,
	}
	if dest != nil {
		txn.ToAccountID = &dest.ID
	}

	if err := s.txRepo.Create(txCtx, dbTx, txn); err != nil {
		return nil, s.txError("create transaction", err)
	}

	// Bill payments carry a billing sub-record in the same commit. Only the
	// field the category mandates is persisted; extraneous ones are dropped.
	if req.Kind == domain.KindBillPayment {
		record := &domain.BillingRecord{
			ID:            uuid.New(),
			TransactionID: txn.ID,
			BillingType:   *req.BillingType,
			Amount:        req.Amount,
			CreatedAt:     now,
		}
		switch *req.BillingType {
		case domain.BillingElectricity:
			record.CustomerID = req.CustomerID
		case domain.BillingRent:
			record.PropertyName = req.PropertyName
		case domain.BillingWater:
			record.RRNumber = req.RRNumber
		}
		if err := s.billingRepo.Create(txCtx, dbTx, record); err != nil {
			return nil, s.txError("create billing record", err)
		}
	}

	var respJSON []byte
	if idempKey != "" {
		respJSON, err = json.Marshal(txn)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("marshal response: %w", err))
		}
		idempLogEntry := &domain.IdempotencyLog{
			Key:           idempKey,
			TransactionID: txn.ID,
			ResponseJSON:  respJSON,
			CreatedAt:     now,
		}
		if err := s.idempRepo.Create(txCtx, dbTx, idempLogEntry); err != nil {
			return nil, s.txError("save idempotency log", err)
		}
	}

	if err := dbTx.Commit(txCtx); err != nil {
		return nil, s.txError("commit tx", err)
	}

	// Post-commit: cache in Redis (best-effort)
	if idempKey != "" {
		if err := s.idempCache.Set(ctx, idempKey, respJSON, idempotencyTTL); err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache idempotency in redis")
		}
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", req.UserID.String()).
		Str("kind", string(req.Kind)).
		Int64("amount", req.Amount).
		Msg("transfer applied")

	return txn, nil
}

// txError maps a stale compare-and-swap and transaction deadline expiry to
// a retryable conflict; everything else is internal.
func (s *TransferServiceImpl) txError(op string, err error) error {
	if errors.Is(err, domain.ErrStaleBalance) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrConflict()
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}

// replayTransaction deserializes a previously returned transaction and
// rejects the replay when the request does not match the original, so a
// reused key can never silently answer a different transfer.
func (s *TransferServiceImpl) replayTransaction(data []byte, req ports.TransferRequest) (*domain.Transaction, error) {
	txn := &domain.Transaction{}
	if err := json.Unmarshal(data, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached tx: %w", err))
	}
	if txn.Amount != req.Amount || txn.Kind != req.Kind {
		return nil, apperror.ErrIdempotencyMismatch()
	}
	return txn, nil
}
