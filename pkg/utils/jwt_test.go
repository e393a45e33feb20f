package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("42", "Customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "Customer", claims.Role)

	expAt, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.NotNil(t, expAt)
}

func TestParseJWT_RejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}

func TestParseJWT_RejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateJWT("1", "Admin")
	require.NoError(t, err)

	InitJWT("secret-two")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}
