package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	token, exp, err := tm.GenerateToken("acc-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManagerUniqueTokens(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	a, _, err := tm.GenerateToken("acc-1")
	require.NoError(t, err)
	b, _, err := tm.GenerateToken("acc-1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenManagerRejectsForeignSignature(t *testing.T) {
	token, _, err := NewTokenManager("other", 5).GenerateToken("acc-1")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 5).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManagerRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", 5).ParseToken("not-a-token")
	assert.Error(t, err)
}
