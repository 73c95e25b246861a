package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mobile-banking-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Number == a.Number {
			return fmt.Errorf("account number already exists")
		}
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountRepo) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Number == number {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAccountRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.Account{}
	for _, a := range r.accounts {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *inMemoryAccountRepo) ListOthers(ctx context.Context, userID uuid.UUID) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.Account{}
	for _, a := range r.accounts {
		if a.UserID != userID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *inMemoryAccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryAccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, expectedBalance, newBalance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[accountID]
	if !ok {
		return fmt.Errorf("account not found")
	}
	if a.Balance != expectedBalance {
		return domain.ErrStaleBalance
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Transaction Repo ---

// inMemoryTransactionRepo appends to a slice so creation order survives,
// mirroring the ledger's ORDER BY created_at, id read.
type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.transactions = append(r.transactions, &cp)
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.transactions {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.Transaction{}
	for _, t := range r.transactions {
		if t.UserID == userID {
			result = append(result, *t)
		}
	}
	return result, nil
}

// --- In-Memory Billing Repo ---

type inMemoryBillingRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.BillingRecord // keyed by transaction ID
}

func newInMemoryBillingRepo() *inMemoryBillingRepo {
	return &inMemoryBillingRepo{records: make(map[uuid.UUID]*domain.BillingRecord)}
}

func (r *inMemoryBillingRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.BillingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records[record.TransactionID] = &cp
	return nil
}

func (r *inMemoryBillingRepo) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.BillingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[transactionID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *inMemoryBillingRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email already exists")
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *inMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// --- In-Memory Loan Repo ---

type inMemoryLoanRepo struct {
	mu        sync.Mutex
	loans     map[uuid.UUID]*domain.Loan // keyed by account ID
	slotTaken bool
}

func newInMemoryLoanRepo() *inMemoryLoanRepo {
	return &inMemoryLoanRepo{loans: make(map[uuid.UUID]*domain.Loan)}
}

func (r *inMemoryLoanRepo) Create(ctx context.Context, tx pgx.Tx, loan *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *loan
	r.loans[loan.AccountID] = &cp
	return nil
}

func (r *inMemoryLoanRepo) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[accountID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *inMemoryLoanRepo) ClaimGlobalSlot(ctx context.Context, tx pgx.Tx) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTaken {
		return false, nil
	}
	r.slotTaken = true
	return true, nil
}

func (r *inMemoryLoanRepo) GlobalSlotTaken(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slotTaken, nil
}

// --- In-Memory Feedback Repo ---

type inMemoryFeedbackRepo struct {
	mu       sync.Mutex
	feedback []*domain.Feedback
	ratings  []*domain.Rating
	requests []*domain.ReceiveRequest
}

func newInMemoryFeedbackRepo() *inMemoryFeedbackRepo {
	return &inMemoryFeedbackRepo{}
}

func (r *inMemoryFeedbackRepo) CreateFeedback(ctx context.Context, f *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.feedback = append(r.feedback, &cp)
	return nil
}

func (r *inMemoryFeedbackRepo) CreateRating(ctx context.Context, rating *domain.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rating
	r.ratings = append(r.ratings, &cp)
	return nil
}

func (r *inMemoryFeedbackRepo) CreateReceiveRequest(ctx context.Context, req *domain.ReceiveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests = append(r.requests, &cp)
	return nil
}

// --- In-Memory Idempotency Repo (DB layer) ---

type inMemoryIdempotencyRepo struct {
	mu   sync.RWMutex
	logs map[string]*domain.IdempotencyLog
}

func newInMemoryIdempotencyRepo() *inMemoryIdempotencyRepo {
	return &inMemoryIdempotencyRepo{logs: make(map[string]*domain.IdempotencyLog)}
}

func (r *inMemoryIdempotencyRepo) Create(ctx context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[log.Key] = log
	return nil
}

func (r *inMemoryIdempotencyRepo) Get(ctx context.Context, key string) (*domain.IdempotencyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.logs[key]
	if !ok {
		return nil, nil
	}
	return l, nil
}

// --- In-Memory Idempotency Cache (Redis layer) ---

type inMemoryIdempotencyCache struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func newInMemoryIdempotencyCache() *inMemoryIdempotencyCache {
	return &inMemoryIdempotencyCache{values: make(map[string][]byte)}
}

func (c *inMemoryIdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (c *inMemoryIdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
