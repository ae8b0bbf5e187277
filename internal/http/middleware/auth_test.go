package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestJWTRoundTrip(t *testing.T) {
	const secret = "test-secret"

	token, err := GenerateJWT(42, secret)
	require.NoError(t, err)

	userID, err := parseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "right-secret")
	require.NoError(t, err)

	_, err = parseToken(token, "wrong-secret")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := parseToken("not.a.token", "secret")
	assert.Error(t, err)
}
