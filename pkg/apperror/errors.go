package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"` // Offending request field, for validation errors
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a generic request-validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// MissingField returns a validation error naming the absent request field.
func MissingField(field string) *AppError {
	e := New("VAL_001", fmt.Sprintf("%s is required", field), http.StatusBadRequest)
	e.Field = field
	return e
}

// ---- Transfer Business Logic (TRF) ----

func ErrAccountNotFound() *AppError {
	return New("TRF_001", "Account not found", http.StatusNotFound)
}

func ErrInsufficientFunds() *AppError {
	return New("TRF_002", "Insufficient balance in account", http.StatusPaymentRequired)
}

func ErrOwnershipMismatch() *AppError {
	return New("TRF_003", "Both accounts must belong to the requesting user", http.StatusForbidden)
}

func ErrUnsupportedKind() *AppError {
	return New("TRF_004", "Unsupported transaction type", http.StatusBadRequest)
}

// ErrConflict signals concurrent-mutation contention. Safe to retry with a fresh read.
func ErrConflict() *AppError {
	return New("TRF_005", "Account was modified concurrently, retry the transfer", http.StatusConflict)
}

func ErrHistoryNotFound() *AppError {
	return New("TRF_006", "No transactions found for user", http.StatusNotFound)
}

// ErrIdempotencyMismatch signals an idempotency key reused with a request
// that differs from the one it originally answered.
func ErrIdempotencyMismatch() *AppError {
	return New("TRF_007", "Idempotency key was already used with a different request", http.StatusConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Loan (LOAN) ----

func ErrLoanAlreadyActive() *AppError {
	return New("LOAN_001", "A loan application is already active", http.StatusConflict)
}

func ErrLoanExistsOnAccount() *AppError {
	return New("LOAN_002", "Loan already taken on this account", http.StatusConflict)
}

func ErrLoanLimitExceeded() *AppError {
	return New("LOAN_003", "Loan amount exceeds the maximum limit", http.StatusUnprocessableEntity)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
// The wrapped cause is logged, never serialized to the client.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
