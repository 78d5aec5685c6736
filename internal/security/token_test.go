package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bikeshop-rental-backend/internal/domain"
)

const testSecret = "test-secret-key-at-least-32-characters"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 15)

	token, err := tm.GenerateAccessToken(42, "clerk@bikeshop.test", domain.StaffRoleClerk)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), claims.StaffID)
	assert.Equal(t, "clerk@bikeshop.test", claims.Email)
	assert.Equal(t, domain.StaffRoleClerk, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "bikeshop-rental", claims.Issuer)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager(testSecret, -1)

	token, err := tm.GenerateAccessToken(42, "clerk@bikeshop.test", domain.StaffRoleClerk)
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, 15)
	other := NewTokenManager("another-secret-key-also-32-characters!", 15)

	token, err := tm.GenerateAccessToken(42, "clerk@bikeshop.test", domain.StaffRoleClerk)
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager(testSecret, 15)

	_, err := tm.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
