package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cr3t-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cr3t-pass", hash)

	assert.True(t, CheckPassword("s3cr3t-pass", hash))
	assert.False(t, CheckPassword("wrong-pass", hash))
}
