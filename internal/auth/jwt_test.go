package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("test-secret-that-is-long-enough-00", time.Hour, time.Hour)
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken(RealmAdmin, 42, "guildmaster")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, RealmAdmin, claims.Realm)
	assert.Equal(t, "guildmaster", claims.Username)
}

func TestValidateTokenForRealm_WrongRealm(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken(RealmUser, 7, "")
	require.NoError(t, err)

	_, err = m.ValidateTokenForRealm(token, RealmAdmin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected realm")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewJWTManager("a-completely-different-secret-0000", time.Hour, time.Hour)

	token, err := m.GenerateToken(RealmAdmin, 1, "x")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	m := NewJWTManager("test-secret-that-is-long-enough-00", -time.Minute, -time.Minute)

	token, err := m.GenerateToken(RealmUser, 1, "")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateToken_UnknownRealm(t *testing.T) {
	m := newTestManager()
	_, err := m.GenerateToken(Realm("moderator"), 1, "")
	assert.Error(t, err)
}
