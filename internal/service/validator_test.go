package service

import (
	"testing"

	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func billingPtr(b domain.BillingType) *domain.BillingType { return &b }

func validUPIRequest() ports.TransferRequest {
	return ports.TransferRequest{
		UserID:            uuid.New(),
		FromAccountNumber: "1111111111",
		Amount:            100_00,
		Kind:              domain.KindUPI,
		UPIID:             strPtr("merchant@upi"),
	}
}

func TestTransferValidator_Validate(t *testing.T) {
	v := NewTransferValidator()

	tests := []struct {
		name      string
		mutate    func(*ports.TransferRequest)
		wantCode  string
		wantField string
	}{
		{
			name:   "valid UPI request",
			mutate: func(r *ports.TransferRequest) {},
		},
		{
			name: "unknown kind",
			mutate: func(r *ports.TransferRequest) {
				r.Kind = domain.TransactionKind("WIRE")
			},
			wantCode: "TRF_004",
		},
		{
			name: "zero amount",
			mutate: func(r *ports.TransferRequest) {
				r.Amount = 0
			},
			wantCode: "VAL_001",
		},
		{
			name: "negative amount",
			mutate: func(r *ports.TransferRequest) {
				r.Amount = -5_00
			},
			wantCode: "VAL_001",
		},
		{
			name: "missing source account",
			mutate: func(r *ports.TransferRequest) {
				r.FromAccountNumber = ""
			},
			wantCode:  "VAL_001",
			wantField: "fromAccountNumber",
		},
		{
			name: "self transfer without destination",
			mutate: func(r *ports.TransferRequest) {
				r.Kind = domain.KindSelfTransfer
				r.UPIID = nil
			},
			wantCode:  "VAL_001",
			wantField: "toAccountNumber",
		},
		{
			name: "transfer to same account",
			mutate: func(r *ports.TransferRequest) {
				r.Kind = domain.KindTransferToOthers
				r.ToAccountNumber = strPtr("1111111111")
				r.UPIID = nil
			},
			wantCode: "VAL_001",
		},
		{
			name: "UPI without upiId",
			mutate: func(r *ports.TransferRequest) {
				r.UPIID = nil
			},
			wantCode:  "VAL_001",
			wantField: "upiId",
		},
		{
			name: "bill payment without billing type",
			mutate: func(r *ports.TransferRequest) {
				r.Kind = domain.KindBillPayment
				r.UPIID = nil
			},
			wantCode:  "VAL_001",
			wantField: "billingType",
		},
		{
			name: "electricity bill without customerId",
			mutate: func(r *ports.TransferRequest) {
				r.Kind = domain.KindBillPayment
				r.UPIID = nil
				r.BillingType = billingPtr(domain.BillingElectricity)
			},
			wantCode:  "VAL_001",
			wantField: "customerId",
		},
		{
			name: "rent bill without propertyName",
			mutate: func(r *ports.TransferRequest) {
				r.Kind = domain.KindBillPayment
				r.UPIID = nil
				r.BillingType = billingPtr(domain.BillingRent)
			},
			wantCode:  "VAL_001",
			wantField: "propertyName",
		},
		{
			name: "water bill without rrNumber",
			mutate: func(r *ports.TransferRequest) {
				r.Kind = domain.KindBillPayment
				r.UPIID = nil
				r.BillingType = billingPtr(domain.BillingWater)
			},
			wantCode:  "VAL_001",
			wantField: "rrNumber",
		},
		{
			name: "water bill with rrNumber",
			mutate: func(r *ports.TransferRequest) {
				r.Kind = domain.KindBillPayment
				r.UPIID = nil
				r.BillingType = billingPtr(domain.BillingWater)
				r.RRNumber = strPtr("RR-1001")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUPIRequest()
			tt.mutate(&req)

			err := v.Validate(req)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, appErr.Field)
			}
		})
	}
}
