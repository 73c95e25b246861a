package service

import (
	"context"

	"mobile-banking-backend/internal/core/domain"
	"mobile-banking-backend/internal/core/ports"
	"mobile-banking-backend/pkg/apperror"

	"github.com/google/uuid"
)

// reportingService implements ports.ReportingService: the read side of
// the history ledger.
type reportingService struct {
	txRepo      ports.TransactionRepository
	billingRepo ports.BillingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	txRepo ports.TransactionRepository,
	billingRepo ports.BillingRepository,
) ports.ReportingService {
	return &reportingService{
		txRepo:      txRepo,
		billingRepo: billingRepo,
	}
}

// ListByUser returns the user's history in creation order. An empty slice
// is a valid result here; whether that is an error is the caller's call.
func (s *reportingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	txns, err := s.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return txns, nil
}

// GetBilling returns the billing sub-record attached to a transaction.
func (s *reportingService) GetBilling(ctx context.Context, transactionID uuid.UUID) (*domain.BillingRecord, error) {
	record, err := s.billingRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if record == nil {
		return nil, apperror.ErrHistoryNotFound()
	}
	return record, nil
}
