package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremeplz/hiremeplz/internal/config"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

func newTestJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService("test-secret-for-tokens")
	identity := types.AuthContext{
		UserID: uuid.New(),
		TeamID: uuid.New(),
		Role:   types.RoleOwner,
	}

	token, err := svc.GenerateToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Auth())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := newTestJWTService("secret-one").GenerateToken(types.AuthContext{
		UserID: uuid.New(),
		TeamID: uuid.New(),
		Role:   types.RoleMember,
	})
	require.NoError(t, err)

	_, err = newTestJWTService("secret-two").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenEmpty(t *testing.T) {
	_, err := newTestJWTService("test-secret").ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenMalformed(t *testing.T) {
	_, err := newTestJWTService("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestAsTokenValidator(t *testing.T) {
	svc := newTestJWTService("test-secret-for-tokens")
	identity := types.AuthContext{UserID: uuid.New(), TeamID: uuid.New(), Role: types.RoleOwner}

	token, err := svc.GenerateToken(identity)
	require.NoError(t, err)

	provider, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity, provider.Auth())
}
