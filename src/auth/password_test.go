package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("pw1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, CheckPassword("pw1", []byte(digest)))
	assert.False(t, CheckPassword("pw2", []byte(digest)))
	assert.False(t, CheckPassword("", []byte(digest)))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("pw1")
	require.NoError(t, err)
	second, err := HashPassword("pw1")
	require.NoError(t, err)

	// Same plaintext, different salts, different digests. Both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("pw1", []byte(first)))
	assert.True(t, CheckPassword("pw1", []byte(second)))
}

func TestCheckPasswordAgainstGarbageDigest(t *testing.T) {
	assert.False(t, CheckPassword("pw1", []byte("not-a-bcrypt-digest")))
}
