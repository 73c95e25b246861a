package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret-at-least-32-characters!!", time.Hour, "mobile-banking-backend")
	userID := uuid.New()

	token, expiry, err := svc.Generate(userID, "asha@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
}

func TestJWTTokenService_Validate_WrongSecret(t *testing.T) {
	svc := NewJWTTokenService("secret-one-that-is-long-enough-0000", time.Hour, "mobile-banking-backend")
	other := NewJWTTokenService("secret-two-that-is-long-enough-0000", time.Hour, "mobile-banking-backend")

	token, _, err := svc.Generate(uuid.New(), "a@b.c")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Expired(t *testing.T) {
	svc := NewJWTTokenService("test-secret-at-least-32-characters!!", -time.Minute, "mobile-banking-backend")

	token, _, err := svc.Generate(uuid.New(), "a@b.c")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Garbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret-at-least-32-characters!!", time.Hour, "mobile-banking-backend")

	_, err := svc.Validate("not.a.jwt")
	assert.Error(t, err)
}
