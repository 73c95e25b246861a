package postgres

import (
	"context"
	"fmt"

	"mobile-banking-backend/internal/core/domain"
)

// FeedbackRepo implements ports.FeedbackRepository.
type FeedbackRepo struct {
	pool Pool
}

// NewFeedbackRepo creates a new FeedbackRepo.
func NewFeedbackRepo(pool Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

// CreateFeedback inserts a feedback entry.
func (r *FeedbackRepo) CreateFeedback(ctx context.Context, f *domain.Feedback) error {
	query := `INSERT INTO feedback (id, user_id, username, feedback_text, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, f.ID, f.UserID, f.Username, f.FeedbackText, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// CreateRating inserts a rating entry.
func (r *FeedbackRepo) CreateRating(ctx context.Context, rt *domain.Rating) error {
	query := `INSERT INTO ratings (id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, rt.ID, rt.UserID, rt.Stars, rt.Comment, rt.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert rating: %w", err)
	}
	return nil
}

// CreateReceiveRequest inserts a receive (collect) request.
func (r *FeedbackRepo) CreateReceiveRequest(ctx context.Context, req *domain.ReceiveRequest) error {
	query := `INSERT INTO receive_requests (id, user_id, account_number, amount, qr_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		req.ID, req.UserID, req.AccountNumber, req.Amount, req.QRCode, req.Status, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receive request: %w", err)
	}
	return nil
}
