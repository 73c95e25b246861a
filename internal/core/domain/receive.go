package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReceiveStatus is the lifecycle state of a receive (collect) request.
type ReceiveStatus string

const (
	ReceivePending   ReceiveStatus = "PENDING"
	ReceiveFulfilled ReceiveStatus = "FULFILLED"
)

// ReceiveRequest asks another user to pay into an account, carrying a
// pre-rendered QR payload.
type ReceiveRequest struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"user_id"`
	AccountNumber string        `json:"account_number"`
	Amount        int64         `json:"amount"`
	QRCode        string        `json:"qr_code"`
	Status        ReceiveStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ReceiveQRPayload renders the QR string for a receive request.
func ReceiveQRPayload(accountNumber string, amount int64) string {
	return fmt.Sprintf("RECEIVE:%s:%d", accountNumber, amount)
}

// UPIQRPayload renders the UPI deep link shown when an account collects
// a payment.
func UPIQRPayload(accountNumber, holderName string, accountID uuid.UUID) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&tid=%s", accountNumber, holderName, accountID.String())
}
