package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlist/internal/config"
	"smartlist/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(config.JWTConfig{Secret: "test-secret", ExpiresIn: "1h"})

	user := &models.User{ID: 42, Username: "ana", Email: "ana@example.com"}
	token, err := manager.GenerateToken(user)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(config.JWTConfig{Secret: "secret-a", ExpiresIn: "1h"})
	other := NewJWTManager(config.JWTConfig{Secret: "secret-b", ExpiresIn: "1h"})

	token, err := manager.GenerateToken(&models.User{ID: 1, Username: "u", Email: "u@example.com"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, CheckPassword("s3cret!", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
