package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrStaleBalance is returned by the account store when a compare-and-swap
// balance update finds the row changed since it was read.
var ErrStaleBalance = errors.New("account balance changed concurrently")

// TransactionKind is the closed set of supported money movements.
type TransactionKind string

const (
	KindSelfTransfer     TransactionKind = "SELF_TRANSFER"
	KindTransferToOthers TransactionKind = "TRANSFER_TO_OTHERS"
	KindUPI              TransactionKind = "UPI"
	KindBillPayment      TransactionKind = "BILL_PAYMENT"
)

// IsValid reports whether k is one of the recognized kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindSelfTransfer, KindTransferToOthers, KindUPI, KindBillPayment:
		return true
	}
	return false
}

// RequiresDestination reports whether the kind moves funds into a second
// account. UPI and bill payments are one-sided debits.
func (k TransactionKind) RequiresDestination() bool {
	switch k {
	case KindSelfTransfer, KindTransferToOthers:
		return true
	case KindUPI, KindBillPayment:
		return false
	}
	return false
}

// TransactionStatus is the lifecycle state of a history record.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an immutable history record of a completed transfer.
// Created exactly once per successful engine invocation, never mutated.
type Transaction struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	Kind          TransactionKind   `json:"transaction_type"`
	FromAccountID *uuid.UUID        `json:"from_account_id,omitempty"`
	ToAccountID   *uuid.UUID        `json:"to_account_id,omitempty"`
	Amount        int64             `json:"amount"` // minor units, > 0
	UPIID         *string           `json:"upi_id,omitempty"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

// BuildIdempotencyKey derives the storage key for a client-supplied
// idempotency token, scoped per user.
func BuildIdempotencyKey(userID uuid.UUID, token string) string {
	return fmt.Sprintf("%s:%s", userID.String(), token)
}
