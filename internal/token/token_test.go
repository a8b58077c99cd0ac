package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseAccessToken(t *testing.T) {
	secret := []byte("test-secret")

	raw, err := SignAccessToken("user-1", "Manager", secret)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseAccessToken(raw, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "Manager", claims["role"])
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	raw, err := SignAccessToken("user-1", "User", []byte("right"))
	require.NoError(t, err)

	_, err = ParseAccessToken(raw, []byte("wrong"))
	require.Error(t, err)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken("not.a.token", []byte("secret"))
	require.Error(t, err)
}
