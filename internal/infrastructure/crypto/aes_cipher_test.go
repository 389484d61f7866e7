//go:build unit
// +build unit

package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESGCMCipher(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	c, err := NewAESGCMCipher(key)
	require.NoError(t, err)

	t.Run("EncryptDecrypt", func(t *testing.T) {
		ciphertext, err := c.Encrypt("I had a hard week.")
		require.NoError(t, err)
		assert.NotContains(t, ciphertext, "hard week")

		plaintext, err := c.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, "I had a hard week.", plaintext)
	})

	t.Run("FreshNonce", func(t *testing.T) {
		a, err := c.Encrypt("same")
		require.NoError(t, err)
		b, err := c.Encrypt("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("DecryptWithWrongKey", func(t *testing.T) {
		ciphertext, err := c.Encrypt("secret")
		require.NoError(t, err)

		otherKey, err := GenerateKey()
		require.NoError(t, err)
		other, err := NewAESGCMCipher(otherKey)
		require.NoError(t, err)

		_, err = other.Decrypt(ciphertext)
		assert.Error(t, err)
	})

	t.Run("DecryptShortCiphertext", func(t *testing.T) {
		_, err := c.Decrypt(base64.StdEncoding.EncodeToString([]byte("short")))
		assert.ErrorIs(t, err, ErrCiphertextTooShort)
	})

	t.Run("DecryptNotBase64", func(t *testing.T) {
		_, err := c.Decrypt("%%%")
		assert.Error(t, err)
	})
}

func TestNewAESGCMCipher_InvalidKey(t *testing.T) {
	_, err := NewAESGCMCipher([]byte("shortkey"))
	assert.Error(t, err)
}
