package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	ok, err := VerifyPassword(hash, "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "hunter23")
	require.NoError(t, err)
	assert.False(t, ok)
}
