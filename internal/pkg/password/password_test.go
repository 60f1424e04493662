package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, Verify("correct horse battery", hash))
	assert.False(t, Verify("wrong password", hash))
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHashToken(t *testing.T) {
	digest := HashToken("some.refresh.token")

	// SHA256 hex digest, stable across calls
	assert.Len(t, digest, 64)
	assert.Equal(t, digest, HashToken("some.refresh.token"))
	assert.NotEqual(t, digest, HashToken("another.token"))
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("short"))
	assert.False(t, ValidatePassword("1234567"))
	assert.True(t, ValidatePassword("12345678"))
	assert.True(t, ValidatePassword("a much longer password"))
}
