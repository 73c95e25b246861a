package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a user-owned ledger account. Balance is held in minor units
// (paise) and must never be observed negative. Only the transfer engine
// mutates the balance, always inside a single storage transaction.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"account_number"` // externally addressable alias
	BankName  string    `json:"bank_name"`
	BankCode  string    `json:"bank_code"`
	UserID    uuid.UUID `json:"user_id"`
	Balance   int64     `json:"balance"` // minor units, >= 0
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanDebit reports whether the account holds at least amount.
func (a *Account) CanDebit(amount int64) bool {
	return a.Balance >= amount
}

// OwnedBy reports whether the account belongs to the given user.
func (a *Account) OwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}
