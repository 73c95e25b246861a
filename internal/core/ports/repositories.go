package ports

import (
	"context"
	"time"

	"mobile-banking-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// AccountRepository is the account store consumed by the transfer engine.
// Methods accepting pgx.Tx run inside a transaction block; GetByIDForUpdate
// takes a pessimistic row lock and UpdateBalance additionally carries
// compare-and-swap semantics on the expected prior balance.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
	ListOthers(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	// UpdateBalance applies newBalance only while the stored balance still
	// equals expectedBalance; otherwise it returns domain.ErrStaleBalance.
	UpdateBalance(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, expectedBalance, newBalance int64) error
}

// TransactionRepository is the append-only history ledger.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// ListByUser returns the user's records in creation order. An empty
	// slice is a valid result, not an error.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
}

// BillingRepository persists billing sub-records for bill payments. Create
// is only ever called inside the commit of the owning transaction.
type BillingRepository interface {
	Create(ctx context.Context, tx pgx.Tx, record *domain.BillingRecord) error
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.BillingRecord, error)
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// LoanRepository persists loan applications and the global application slot.
type LoanRepository interface {
	Create(ctx context.Context, tx pgx.Tx, loan *domain.Loan) error
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Loan, error)
	// ClaimGlobalSlot atomically flips the singleton slot row from free to
	// taken. Returns false when another application already holds it.
	ClaimGlobalSlot(ctx context.Context, tx pgx.Tx) (bool, error)
	GlobalSlotTaken(ctx context.Context) (bool, error)
}

// FeedbackRepository persists feedback, ratings, and receive requests.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback *domain.Feedback) error
	CreateRating(ctx context.Context, rating *domain.Rating) error
	CreateReceiveRequest(ctx context.Context, request *domain.ReceiveRequest) error
}

// IdempotencyRepository defines persistence for idempotency logs (DB layer).
type IdempotencyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error
	Get(ctx context.Context, key string) (*domain.IdempotencyLog, error)
}

// IdempotencyCache is the fast-path idempotency lookup (Redis layer).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
