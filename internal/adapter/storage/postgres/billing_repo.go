package postgres

import (
	"context"
	"errors"
	"fmt"

	"mobile-banking-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BillingRepo implements ports.BillingRepository.
type BillingRepo struct {
	pool Pool
}

// NewBillingRepo creates a new BillingRepo.
func NewBillingRepo(pool Pool) *BillingRepo {
	return &BillingRepo{pool: pool}
}

// Create inserts a billing sub-record within a database transaction. The
// caller is the transfer engine, inside the same commit as the owning
// BILL_PAYMENT transaction.
func (r *BillingRepo) Create(ctx context.Context, tx pgx.Tx, b *domain.BillingRecord) error {
	query := `INSERT INTO billing_records (id, transaction_id, billing_type, amount, customer_id, property_name, rr_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		b.ID, b.TransactionID, b.BillingType, b.Amount,
		b.CustomerID, b.PropertyName, b.RRNumber, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert billing record: %w", err)
	}
	return nil
}

// GetByTransactionID fetches the billing record linked to a transaction.
func (r *BillingRepo) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.BillingRecord, error) {
	query := `SELECT id, transaction_id, billing_type, amount, customer_id, property_name, rr_number, created_at
		FROM billing_records WHERE transaction_id = $1`

	b := &domain.BillingRecord{}
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(
		&b.ID, &b.TransactionID, &b.BillingType, &b.Amount,
		&b.CustomerID, &b.PropertyName, &b.RRNumber, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get billing record: %w", err)
	}
	return b, nil
}
