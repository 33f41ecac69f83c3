package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, "admin@school.test", "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@school.test", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestTokenManager_ValidateToken_Expired(t *testing.T) {
	manager := &tokenManager{secret: []byte(testSecret), ttl: -time.Minute}

	token, err := manager.GenerateAccessToken(uuid.New(), "user@school.test", "teacher")
	assert.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_ValidateToken_WrongSecret(t *testing.T) {
	issuer := NewTokenManager(testSecret, time.Hour)
	verifier := NewTokenManager("another-secret-key-also-32-chars-xx", time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), "user@school.test", "librarian")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ValidateToken_Garbage(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)

	_, err := manager.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
