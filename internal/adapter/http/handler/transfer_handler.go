package handler

import (
	"time"

	"mobile-banking-backend/internal/adapter/http/dto"
	"mobile-banking-backend/internal/adapter/http/middleware"
	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"
	"mobile-banking-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles money-movement and history endpoints.
type TransferHandler struct {
	transferSvc  ports.TransferService
	reportingSvc ports.ReportingService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferSvc ports.TransferService, reportingSvc ports.ReportingService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc, reportingSvc: reportingSvc}
}

// Transfer handles POST /api/v1/transfers.
func (h *TransferHandler) Transfer(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	svcReq := ports.TransferRequest{
		UserID:            userID.(uuid.UUID),
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		Amount:            req.Amount,
		Kind:              domain.TransactionKind(req.TransactionType),
		UPIID:             req.UPIID,
		CustomerID:        req.CustomerID,
		PropertyName:      req.PropertyName,
		RRNumber:          req.RRNumber,
	}
	if req.BillingType != nil {
		bt := domain.BillingType(*req.BillingType)
		svcReq.BillingType = &bt
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		svcReq.IdempotencyKey = &key
	}

	result, err := h.transferSvc.Apply(c.Request.Context(), svcReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(result))
}

// ListHistory handles GET /api/v1/transactions. A user with no history
// gets a 404, matching the mobile client's expectations.
func (h *TransferHandler) ListHistory(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	txns, err := h.reportingSvc.ListByUser(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(txns) == 0 {
		response.Error(c, apperror.ErrHistoryNotFound())
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}
	response.OK(c, items)
}

// GetBilling handles GET /api/v1/transactions/:id/billing.
func (h *TransferHandler) GetBilling(c *gin.Context) {
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	record, err := h.reportingSvc.GetBilling(c.Request.Context(), txnID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BillingResponse{
		TransactionID: record.TransactionID.String(),
		BillingType:   string(record.BillingType),
		Amount:        record.Amount,
		CustomerID:    record.CustomerID,
		PropertyName:  record.PropertyName,
		RRNumber:      record.RRNumber,
	})
}

// toTransactionResponse converts domain.Transaction to DTO.
func toTransactionResponse(tx *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:              tx.ID.String(),
		TransactionType: string(tx.Kind),
		Amount:          tx.Amount,
		UPIID:           tx.UPIID,
		Status:          string(tx.Status),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.FromAccountID != nil {
		s := tx.FromAccountID.String()
		resp.FromAccountID = &s
	}
	if tx.ToAccountID != nil {
		s := tx.ToAccountID.String()
		resp.ToAccountID = &s
	}
	return resp
}
