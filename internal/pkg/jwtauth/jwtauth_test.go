package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key"

func TestGetAndParseToken(t *testing.T) {
	token, err := GetToken(42, "alice", "ROLE_ADMIN", time.Hour, secret)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "ROLE_ADMIN", claims.Role)
	require.NotEmpty(t, claims.Id)
	require.InDelta(t, time.Hour.Seconds(), claims.ExpiresIn(time.Now()).Seconds(), 5)
}

func TestTokensAreUnique(t *testing.T) {
	a, err := GetToken(1, "bob", "ROLE_USER", time.Hour, secret)
	require.NoError(t, err)

	b, err := GetToken(1, "bob", "ROLE_USER", time.Hour, secret)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GetToken(1, "bob", "ROLE_USER", time.Hour, secret)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GetToken(1, "bob", "ROLE_USER", -time.Minute, secret)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", secret)
	require.Error(t, err)
}

func TestExpiresInPast(t *testing.T) {
	c := Claims{}
	c.ExpiresAt = time.Now().Add(-time.Hour).Unix()

	require.Zero(t, c.ExpiresIn(time.Now()))
}
