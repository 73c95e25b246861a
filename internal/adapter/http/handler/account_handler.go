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

// AccountHandler handles account management endpoints.
type AccountHandler struct {
	accountSvc ports.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// Create handles POST /api/v1/accounts.
func (h *AccountHandler) Create(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	account, err := h.accountSvc.Create(c.Request.Context(), ports.CreateAccountRequest{
		UserID:   userID.(uuid.UUID),
		Number:   req.AccountNumber,
		BankName: req.BankName,
		BankCode: req.BankCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAccountResponse(account))
}

// List handles GET /api/v1/accounts.
func (h *AccountHandler) List(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	accounts, err := h.accountSvc.ListByUser(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResponse(&accounts[i]))
	}
	response.OK(c, items)
}

// GetBalance handles GET /api/v1/accounts/:id/balance.
func (h *AccountHandler) GetBalance(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid account id"))
		return
	}

	balance, err := h.accountSvc.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{AccountID: accountID.String(), Balance: balance})
}

// RandomPayee handles GET /api/v1/payees/random.
func (h *AccountHandler) RandomPayee(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	payee, err := h.accountSvc.RandomPayee(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PayeeResponse{AccountNumber: payee.AccountNumber, HolderName: payee.HolderName})
}

// LookupPayee handles GET /api/v1/payees/:number.
func (h *AccountHandler) LookupPayee(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	payee, err := h.accountSvc.LookupPayee(c.Request.Context(), c.Param("number"), userID.(uuid.UUID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PayeeResponse{AccountNumber: payee.AccountNumber, HolderName: payee.HolderName})
}

// UPIQRCode handles GET /api/v1/accounts/:id/qr.
func (h *AccountHandler) UPIQRCode(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid account id"))
		return
	}

	qr, err := h.accountSvc.UPIQRCode(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.QRCodeResponse{QRCode: qr})
}

// CreateReceiveRequest handles POST /api/v1/receive-requests.
func (h *AccountHandler) CreateReceiveRequest(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ReceiveRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.accountSvc.CreateReceiveRequest(c.Request.Context(), ports.ReceiveRequestInput{
		UserID:        userID.(uuid.UUID),
		AccountNumber: req.AccountNumber,
		Amount:        req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ReceiveRequestResponse{
		ID:            result.ID.String(),
		AccountNumber: result.AccountNumber,
		Amount:        result.Amount,
		QRCode:        result.QRCode,
		Status:        string(result.Status),
	})
}

func toAccountResponse(a *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:            a.ID.String(),
		AccountNumber: a.Number,
		BankName:      a.BankName,
		BankCode:      a.BankCode,
		Balance:       a.Balance,
	}
}
