package handler

import (
	"mobile-banking-backend/internal/adapter/http/dto"
	"mobile-banking-backend/internal/adapter/http/middleware"
	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"
	"mobile-banking-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FeedbackHandler handles feedback and rating endpoints.
type FeedbackHandler struct {
	feedbackSvc ports.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackSvc ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// AddFeedback handles POST /api/v1/feedback.
func (h *FeedbackHandler) AddFeedback(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	email, _ := c.Get(middleware.CtxUserEmail)
	username, _ := email.(string)

	feedback := &domain.Feedback{
		UserID:       userID.(uuid.UUID),
		Username:     username,
		FeedbackText: req.FeedbackText,
	}
	if err := h.feedbackSvc.AddFeedback(c.Request.Context(), feedback); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"id": feedback.ID.String()})
}

// AddRating handles POST /api/v1/ratings.
func (h *FeedbackHandler) AddRating(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	rating := &domain.Rating{
		UserID:  userID.(uuid.UUID),
		Stars:   req.Rating,
		Comment: req.Comment,
	}
	if err := h.feedbackSvc.AddRating(c.Request.Context(), rating); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"id": rating.ID.String()})
}
