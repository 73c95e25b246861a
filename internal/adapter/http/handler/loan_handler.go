package handler

import (
	"mobile-banking-backend/internal/adapter/http/dto"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"
	"mobile-banking-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoanHandler handles loan application endpoints.
type LoanHandler struct {
	loanSvc ports.LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanSvc ports.LoanService) *LoanHandler {
	return &LoanHandler{loanSvc: loanSvc}
}

// Instructions handles GET /api/v1/loans/instructions.
func (h *LoanHandler) Instructions(c *gin.Context) {
	response.OK(c, gin.H{"instructions": h.loanSvc.Instructions()})
}

// Status handles GET /api/v1/loans/status. It reports whether the single
// promotional loan slot is still open.
func (h *LoanHandler) Status(c *gin.Context) {
	taken, err := h.loanSvc.HasActiveLoan(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"slot_taken": taken})
}

// Apply handles POST /api/v1/loans.
func (h *LoanHandler) Apply(c *gin.Context) {
	var req dto.LoanApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid account id"))
		return
	}

	loan, err := h.loanSvc.Apply(c.Request.Context(), ports.LoanApplication{
		AccountID: accountID,
		Amount:    req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.LoanResponse{
		ID:           loan.ID.String(),
		AccountID:    loan.AccountID.String(),
		Amount:       loan.Amount,
		InterestRate: loan.InterestRate,
		TermMonths:   loan.TermMonths,
		Terms:        loan.Terms,
		Status:       string(loan.Status),
	})
}
