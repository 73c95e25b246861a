package postgres

import (
	"context"
	"errors"
	"fmt"

	"mobile-banking-backend/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo persists transfer idempotency records. Rows are written
// inside the transfer transaction, so a key becomes visible only together
// with the transfer it guards. The unique constraint on key makes the
// second of two racing commits fail rather than duplicate a transfer.
type IdempotencyRepo struct {
	pool Pool
}

func NewIdempotencyRepo(pool Pool) *IdempotencyRepo {
	return &IdempotencyRepo{pool: pool}
}

// Create records the response for an idempotency key. Must run in the same
// transaction as the transfer it belongs to.
func (r *IdempotencyRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.IdempotencyLog) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO transfer_idempotency (key, transaction_id, response_json, created_at)
		 VALUES ($1, $2, $3, $4)`,
		rec.Key, rec.TransactionID, rec.ResponseJSON, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("record idempotency key: %w", err)
	}
	return nil
}

// Get returns the stored record for a key, or nil when the key is unseen.
func (r *IdempotencyRepo) Get(ctx context.Context, key string) (*domain.IdempotencyLog, error) {
	var rec domain.IdempotencyLog
	err := r.pool.QueryRow(ctx,
		`SELECT key, transaction_id, response_json, created_at
		 FROM transfer_idempotency WHERE key = $1`, key).
		Scan(&rec.Key, &rec.TransactionID, &rec.ResponseJSON, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load idempotency record: %w", err)
	}
	return &rec, nil
}
