package service

import (
	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"
)

// TransferValidator performs the structural checks on a transfer request
// before any account is resolved. It knows nothing about balances or
// ownership; those checks need storage and belong to the engine.
type TransferValidator struct{}

// NewTransferValidator creates a new TransferValidator.
func NewTransferValidator() *TransferValidator {
	return &TransferValidator{}
}

// Validate checks the request shape: a recognized kind, a positive amount,
// a source account, and the kind-specific required fields. The first
// failure wins; nothing is persisted on any failure.
func (v *TransferValidator) Validate(req ports.TransferRequest) error {
	if !req.Kind.IsValid() {
		return apperror.ErrUnsupportedKind()
	}
	if req.Amount <= 0 {
		return apperror.Validation("amount must be greater than zero")
	}
	if req.FromAccountNumber == "" {
		return apperror.MissingField("fromAccountNumber")
	}

	if req.Kind.RequiresDestination() {
		if req.ToAccountNumber == nil || *req.ToAccountNumber == "" {
			return apperror.MissingField("toAccountNumber")
		}
		if *req.ToAccountNumber == req.FromAccountNumber {
			return apperror.Validation("source and destination accounts must differ")
		}
	}

	switch req.Kind {
	case domain.KindUPI:
		if req.UPIID == nil || *req.UPIID == "" {
			return apperror.MissingField("upiId")
		}
	case domain.KindBillPayment:
		if err := v.validateBilling(req); err != nil {
			return err
		}
	}

	return nil
}

// validateBilling checks the billing category and its mandated field. A
// missing category field rejects the whole transfer; no billing record
// may ever be written without it.
func (v *TransferValidator) validateBilling(req ports.TransferRequest) error {
	if req.BillingType == nil {
		return apperror.MissingField("billingType")
	}
	bt := *req.BillingType
	if !bt.IsValid() {
		return apperror.Validation("unknown billing type")
	}

	var present bool
	switch bt {
	case domain.BillingElectricity:
		present = req.CustomerID != nil && *req.CustomerID != ""
	case domain.BillingRent:
		present = req.PropertyName != nil && *req.PropertyName != ""
	case domain.BillingWater:
		present = req.RRNumber != nil && *req.RRNumber != ""
	}
	if !present {
		return apperror.MissingField(bt.RequiredField())
	}
	return nil
}
