package domain

import (
	"time"

	"github.com/google/uuid"
)

// BillingType is the closed set of bill-payment categories.
type BillingType string

const (
	BillingElectricity BillingType = "ELECTRICITY"
	BillingRent        BillingType = "RENT"
	BillingWater       BillingType = "WATER"
)

// IsValid reports whether b is a recognized billing category.
func (b BillingType) IsValid() bool {
	switch b {
	case BillingElectricity, BillingRent, BillingWater:
		return true
	}
	return false
}

// RequiredField names the category-specific request field each billing
// type mandates.
func (b BillingType) RequiredField() string {
	switch b {
	case BillingElectricity:
		return "customerId"
	case BillingRent:
		return "propertyName"
	case BillingWater:
		return "rrNumber"
	}
	return ""
}

// BillingRecord is the sub-record persisted alongside a BILL_PAYMENT
// transaction, in the same commit. Exactly one category field is set.
type BillingRecord struct {
	ID            uuid.UUID   `json:"id"`
	TransactionID uuid.UUID   `json:"transaction_id"`
	BillingType   BillingType `json:"billing_type"`
	Amount        int64       `json:"amount"`
	CustomerID    *string     `json:"customer_id,omitempty"`
	PropertyName  *string     `json:"property_name,omitempty"`
	RRNumber      *string     `json:"rr_number,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}
