package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	access, aexp, err := m.GenerateAccessToken("42", "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), aexp, 2*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)

	refresh, _, err := m.GenerateRefreshToken("42", "sid-1")
	require.NoError(t, err)
	claims, err = m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestJWTManager_SecretsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	access, _, err := m.GenerateAccessToken("42", "sid")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)

	access, _, err := m.GenerateAccessToken("42", "sid")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access)
	assert.Error(t, err)
}

func TestJWTManager_TypeClaim(t *testing.T) {
	// same secret on both sides: only the typ claim tells the tokens apart
	m := NewJWTManager("shared", "shared", time.Minute, time.Hour)

	refresh, _, err := m.GenerateRefreshToken("42", "sid")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}
