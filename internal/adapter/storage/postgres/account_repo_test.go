package postgres

import (
	"context"
	"testing"
	"time"

	"mobile-banking-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(userID uuid.UUID, balance int64) *domain.Account {
	return &domain.Account{
		ID:        uuid.New(),
		Number:    "1234567890",
		BankName:  "State Bank",
		BankCode:  "SB001",
		UserID:    userID,
		Balance:   balance,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func accountRow(a *domain.Account) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "account_number", "bank_name", "bank_code", "user_id", "balance", "created_at", "updated_at",
	}).AddRow(a.ID, a.Number, a.BankName, a.BankCode, a.UserID, a.Balance, a.CreatedAt, a.UpdatedAt)
}

func TestAccountRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount(uuid.New(), 0)

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(a.ID, a.Number, a.BankName, a.BankCode, a.UserID, a.Balance, a.CreatedAt, a.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount(uuid.New(), 100_00)

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE id").
		WithArgs(a.ID).
		WillReturnRows(accountRow(a))

	result, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, a.ID, result.ID)
	assert.Equal(t, int64(100_00), result.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByNumber_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE account_number").
		WithArgs("0000000000").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "account_number", "bank_name", "bank_code", "user_id", "balance", "created_at", "updated_at",
		}))

	result, err := repo.GetByNumber(context.Background(), "0000000000")
	require.NoError(t, err)
	assert.Nil(t, result, "absent account should be nil, nil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount(uuid.New(), 50_00)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM accounts WHERE id .+ FOR UPDATE").
		WithArgs(a.ID).
		WillReturnRows(accountRow(a))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByIDForUpdate(context.Background(), tx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, a.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_UpdateBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	accountID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET balance").
		WithArgs(int64(40_00), accountID, int64(100_00)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalance(context.Background(), tx, accountID, 100_00, 40_00)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_UpdateBalance_Stale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	accountID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET balance").
		WithArgs(int64(40_00), accountID, int64(100_00)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalance(context.Background(), tx, accountID, 100_00, 40_00)
	assert.ErrorIs(t, err, domain.ErrStaleBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_ListByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	userID := uuid.New()
	a1 := newTestAccount(userID, 100_00)
	a2 := newTestAccount(userID, 0)
	a2.Number = "9876543210"

	rows := pgxmock.NewRows([]string{
		"id", "account_number", "bank_name", "bank_code", "user_id", "balance", "created_at", "updated_at",
	}).
		AddRow(a1.ID, a1.Number, a1.BankName, a1.BankCode, a1.UserID, a1.Balance, a1.CreatedAt, a1.UpdatedAt).
		AddRow(a2.ID, a2.Number, a2.BankName, a2.BankCode, a2.UserID, a2.Balance, a2.CreatedAt, a2.UpdatedAt)

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE user_id").
		WithArgs(userID).
		WillReturnRows(rows)

	result, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "1234567890", result[0].Number)
	assert.Equal(t, "9876543210", result[1].Number)
	assert.NoError(t, mock.ExpectationsWereMet())
}
