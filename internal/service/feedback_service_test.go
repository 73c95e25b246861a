package service

import (
	"context"
	"testing"

	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFeedbackService_AddFeedback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockFeedbackRepository(ctrl)
	svc := NewFeedbackService(repo)

	fb := &domain.Feedback{UserID: uuid.New(), Username: "asha", FeedbackText: "great app"}
	repo.EXPECT().CreateFeedback(gomock.Any(), fb).Return(nil)

	err := svc.AddFeedback(context.Background(), fb)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, fb.ID)
	assert.False(t, fb.CreatedAt.IsZero())
}

func TestFeedbackService_AddFeedback_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewFeedbackService(mocks.NewMockFeedbackRepository(ctrl))

	err := svc.AddFeedback(context.Background(), &domain.Feedback{UserID: uuid.New()})
	assertAppError(t, err, "VAL_001")
}

func TestFeedbackService_AddRating(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockFeedbackRepository(ctrl)
	svc := NewFeedbackService(repo)

	rating := &domain.Rating{UserID: uuid.New(), Stars: 5}
	repo.EXPECT().CreateRating(gomock.Any(), rating).Return(nil)

	err := svc.AddRating(context.Background(), rating)
	require.NoError(t, err)
}

func TestFeedbackService_AddRating_OutOfRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewFeedbackService(mocks.NewMockFeedbackRepository(ctrl))

	err := svc.AddRating(context.Background(), &domain.Rating{UserID: uuid.New(), Stars: 0})
	assertAppError(t, err, "VAL_001")

	err = svc.AddRating(context.Background(), &domain.Rating{UserID: uuid.New(), Stars: 6})
	assertAppError(t, err, "VAL_001")
}
