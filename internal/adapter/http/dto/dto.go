package dto

// SignupRequest is the request body for user registration.
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreateAccountRequest is the request body for opening an account.
type CreateAccountRequest struct {
	AccountNumber string `json:"account_number" binding:"required,safe_id,max=34"`
	BankName      string `json:"bank_name" binding:"required,min=1,max=100"`
	BankCode      string `json:"bank_code" binding:"omitempty,max=20"`
}

// TransferRequest is the request body for every money movement. Which of
// the optional fields are required depends on transaction_type.
type TransferRequest struct {
	FromAccountNumber string  `json:"from_account_number" binding:"required,safe_id,max=34"`
	ToAccountNumber   *string `json:"to_account_number,omitempty"`
	Amount            int64   `json:"amount" binding:"required,gt=0"`
	TransactionType   string  `json:"transaction_type" binding:"required"`
	UPIID             *string `json:"upi_id,omitempty"`
	BillingType       *string `json:"billing_type,omitempty"`
	CustomerID        *string `json:"customerId,omitempty"`
	PropertyName      *string `json:"propertyName,omitempty"`
	RRNumber          *string `json:"rrNumber,omitempty"`
}

// TransactionResponse is the response body for a transfer result or a
// history entry.
type TransactionResponse struct {
	ID              string  `json:"id"`
	TransactionType string  `json:"transaction_type"`
	FromAccountID   *string `json:"from_account_id,omitempty"`
	ToAccountID     *string `json:"to_account_id,omitempty"`
	Amount          int64   `json:"amount"`
	UPIID           *string `json:"upi_id,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

// AccountResponse is the response body for an account.
type AccountResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	BankCode      string `json:"bank_code,omitempty"`
	Balance       int64  `json:"balance"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
}

// PayeeResponse is the public view of another user's account.
type PayeeResponse struct {
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
}

// QRCodeResponse carries a rendered QR payload.
type QRCodeResponse struct {
	QRCode string `json:"qr_code"`
}

// ReceiveRequestBody is the request body for a receive (collect) request.
type ReceiveRequestBody struct {
	AccountNumber string `json:"account_number" binding:"required,safe_id,max=34"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
}

// ReceiveRequestResponse is the response for a created receive request.
type ReceiveRequestResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
	Amount        int64  `json:"amount"`
	QRCode        string `json:"qr_code"`
	Status        string `json:"status"`
}

// LoanApplicationRequest is the request body for a loan application.
type LoanApplicationRequest struct {
	AccountID string `json:"account_id" binding:"required,uuid"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

// LoanResponse is the response for a filed loan application.
type LoanResponse struct {
	ID           string  `json:"id"`
	AccountID    string  `json:"account_id"`
	Amount       int64   `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_in_months"`
	Terms        string  `json:"terms"`
	Status       string  `json:"status"`
}

// FeedbackRequest is the request body for free-text feedback.
type FeedbackRequest struct {
	FeedbackText string `json:"feedback_text" binding:"required,min=1,max=2000"`
}

// RatingRequest is the request body for a star rating.
type RatingRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

// BillingResponse is the billing sub-record of a bill payment.
type BillingResponse struct {
	TransactionID string  `json:"transaction_id"`
	BillingType   string  `json:"billing_type"`
	Amount        int64   `json:"amount"`
	CustomerID    *string `json:"customer_id,omitempty"`
	PropertyName  *string `json:"property_name,omitempty"`
	RRNumber      *string `json:"rr_number,omitempty"`
}
