package auth

import (
	"testing"

	"saraf-backend/internal/config"
	"saraf-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "saraf-backend"
	return cfg
}

func TestJWTRoundTrip(t *testing.T) {
	mgr := NewJWTManager(testConfig())

	token, err := mgr.GenerateToken(&models.User{ID: 42, Email: "munim@example.com"})
	require.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "munim@example.com", claims.Email)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	mgr := NewJWTManager(testConfig())
	token, err := mgr.GenerateToken(&models.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "different-secret"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
}
