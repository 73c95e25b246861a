package domain

import (
	"time"

	"github.com/google/uuid"
)

// Loan terms are fixed by the bank.
const (
	LoanMaxAmount    = 100_000_00 // minor units
	LoanInterestRate = 7.0
	LoanTermMonths   = 24
	LoanTerms        = "Max 100,000 | 7% interest | 2-year term"
)

// LoanStatus is the lifecycle state of a loan application.
type LoanStatus string

const (
	LoanStatusApplied  LoanStatus = "APPLIED"
	LoanStatusApproved LoanStatus = "APPROVED"
	LoanStatusRejected LoanStatus = "REJECTED"
)

// Loan is a loan application against an account. At most one loan exists
// per account, and at most one application may be active across the whole
// bank; the global slot is a durable row claimed atomically at creation.
type Loan struct {
	ID           uuid.UUID  `json:"id"`
	AccountID    uuid.UUID  `json:"account_id"`
	Amount       int64      `json:"amount"`
	InterestRate float64    `json:"interest_rate"`
	TermMonths   int        `json:"term_in_months"`
	Terms        string     `json:"terms"`
	Status       LoanStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}
