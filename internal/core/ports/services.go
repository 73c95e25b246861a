package ports

import (
	"context"
	"time"

	"mobile-banking-backend/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// --- Service Ports (Business Logic) ---

// TransferRequest is the full input to the transfer engine. Optional
// fields are pointers; which ones are required depends on Kind.
type TransferRequest struct {
	UserID            uuid.UUID
	FromAccountNumber string
	ToAccountNumber   *string
	Amount            int64 // minor units
	Kind              domain.TransactionKind
	UPIID             *string
	BillingType       *domain.BillingType
	CustomerID        *string
	PropertyName      *string
	RRNumber          *string
	IdempotencyKey    *string // client-supplied duplicate-submission token
}

// TransferService is the funds-transfer engine: it validates a request,
// mutates one or two balances, and appends the history (and billing)
// records as one atomic unit.
type TransferService interface {
	Apply(ctx context.Context, req TransferRequest) (*domain.Transaction, error)
}

// ReportingService serves the transaction-history read side.
type ReportingService interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
	GetBilling(ctx context.Context, transactionID uuid.UUID) (*domain.BillingRecord, error)
}

// AccountService defines account management business logic.
type AccountService interface {
	Create(ctx context.Context, req CreateAccountRequest) (*domain.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
	GetBalance(ctx context.Context, accountID uuid.UUID) (int64, error)
	RandomPayee(ctx context.Context, userID uuid.UUID) (*PayeeInfo, error)
	LookupPayee(ctx context.Context, accountNumber string, userID uuid.UUID) (*PayeeInfo, error)
	UPIQRCode(ctx context.Context, accountID uuid.UUID) (string, error)
	CreateReceiveRequest(ctx context.Context, req ReceiveRequestInput) (*domain.ReceiveRequest, error)
}

// CreateAccountRequest holds input for account creation. New accounts
// always start with a zero balance.
type CreateAccountRequest struct {
	UserID   uuid.UUID
	Number   string
	BankName string
	BankCode string
}

// PayeeInfo is the public view of someone else's account.
type PayeeInfo struct {
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
}

// ReceiveRequestInput holds input for a receive (collect) request.
type ReceiveRequestInput struct {
	UserID        uuid.UUID
	AccountNumber string
	Amount        int64
}

// AuthService defines signup/login business logic.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// SignupRequest holds input for user registration.
type SignupRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// LoginResult carries the issued token and its owner.
type LoginResult struct {
	User   *domain.User
	Token  string
	Expiry time.Time
}

// LoanService defines loan application business logic.
type LoanService interface {
	Instructions() string
	HasActiveLoan(ctx context.Context) (bool, error)
	Apply(ctx context.Context, req LoanApplication) (*domain.Loan, error)
}

// LoanApplication holds input for a loan application.
type LoanApplication struct {
	AccountID uuid.UUID
	Amount    int64
}

// FeedbackService defines feedback and rating business logic.
type FeedbackService interface {
	AddFeedback(ctx context.Context, feedback *domain.Feedback) error
	AddRating(ctx context.Context, rating *domain.Rating) error
}
