package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(4) // min cost to keep the test fast

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.NotEmpty(t, salt)

	hash, err := h.Hash(salt, "s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, h.Compare(hash, salt, "s3cret-password"))
	assert.Error(t, h.Compare(hash, salt, "wrong-password"))
	assert.Error(t, h.Compare(hash, "wrong-salt", "s3cret-password"))
}

func TestBcryptHasher_SaltsDiffer(t *testing.T) {
	h := NewBcryptHasher(4)
	s1, err := h.GenerateSalt()
	require.NoError(t, err)
	s2, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}
