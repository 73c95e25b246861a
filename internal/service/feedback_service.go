package service

import (
	"context"
	"time"

	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"

	"github.com/google/uuid"
)

// FeedbackServiceImpl implements ports.FeedbackService.
type FeedbackServiceImpl struct {
	feedbackRepo ports.FeedbackRepository
}

// NewFeedbackService creates a new FeedbackServiceImpl.
func NewFeedbackService(feedbackRepo ports.FeedbackRepository) *FeedbackServiceImpl {
	return &FeedbackServiceImpl{feedbackRepo: feedbackRepo}
}

// AddFeedback stores free-text feedback.
func (s *FeedbackServiceImpl) AddFeedback(ctx context.Context, feedback *domain.Feedback) error {
	if feedback.FeedbackText == "" {
		return apperror.MissingField("feedbackText")
	}

	feedback.ID = uuid.New()
	feedback.CreatedAt = time.Now().UTC()

	if err := s.feedbackRepo.CreateFeedback(ctx, feedback); err != nil {
		return apperror.InternalError(err)
	}
	return nil
}

// AddRating stores a 1-5 star rating.
func (s *FeedbackServiceImpl) AddRating(ctx context.Context, rating *domain.Rating) error {
	if rating.Stars < 1 || rating.Stars > 5 {
		return apperror.Validation("rating must be between 1 and 5")
	}

	rating.ID = uuid.New()
	rating.CreatedAt = time.Now().UTC()

	if err := s.feedbackRepo.CreateRating(ctx, rating); err != nil {
		return apperror.InternalError(err)
	}
	return nil
}
