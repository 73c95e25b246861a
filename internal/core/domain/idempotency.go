package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyLog is the durable record of a transfer response keyed by a
// client-supplied idempotency token. Written inside the transfer commit so
// a replayed request can never observe a half-applied transfer.
type IdempotencyLog struct {
	Key           string    `json:"key"`
	TransactionID uuid.UUID `json:"transaction_id"`
	ResponseJSON  []byte    `json:"response_json"`
	CreatedAt     time.Time `json:"created_at"`
}
