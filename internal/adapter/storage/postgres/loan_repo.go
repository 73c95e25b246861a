package postgres

import (
	"context"
	"errors"
	"fmt"

	"mobile-banking-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LoanRepo implements ports.LoanRepository. The one-application-globally
// rule lives in a durable singleton row (loan_slots, id = 1) claimed with
// a conditional UPDATE, so it survives restarts and holds across multiple
// service instances.
type LoanRepo struct {
	pool Pool
}

// NewLoanRepo creates a new LoanRepo.
func NewLoanRepo(pool Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Create inserts a loan application within a database transaction.
func (r *LoanRepo) Create(ctx context.Context, tx pgx.Tx, l *domain.Loan) error {
	query := `INSERT INTO loans (id, account_id, amount, interest_rate, term_in_months, terms, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		l.ID, l.AccountID, l.Amount, l.InterestRate, l.TermMonths, l.Terms, l.Status, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// GetByAccountID fetches the loan held against an account, if any.
func (r *LoanRepo) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Loan, error) {
	query := `SELECT id, account_id, amount, interest_rate, term_in_months, terms, status, created_at
		FROM loans WHERE account_id = $1`

	l := &domain.Loan{}
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&l.ID, &l.AccountID, &l.Amount, &l.InterestRate, &l.TermMonths, &l.Terms, &l.Status, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan by account: %w", err)
	}
	return l, nil
}

// ClaimGlobalSlot flips the singleton slot row from free to taken inside
// the loan-creation transaction. The conditional UPDATE makes the
// check-and-set atomic; zero rows affected means another application
// already holds the slot.
func (r *LoanRepo) ClaimGlobalSlot(ctx context.Context, tx pgx.Tx) (bool, error) {
	query := `UPDATE loan_slots SET taken = TRUE, updated_at = NOW() WHERE id = 1 AND taken = FALSE`

	tag, err := tx.Exec(ctx, query)
	if err != nil {
		return false, fmt.Errorf("claim loan slot: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GlobalSlotTaken reports whether the global application slot is held.
func (r *LoanRepo) GlobalSlotTaken(ctx context.Context) (bool, error) {
	query := `SELECT taken FROM loan_slots WHERE id = 1`

	var taken bool
	if err := r.pool.QueryRow(ctx, query).Scan(&taken); err != nil {
		return false, fmt.Errorf("read loan slot: %w", err)
	}
	return taken, nil
}
