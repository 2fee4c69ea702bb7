package secrets_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaadSolutions/social/pkg/secrets"
)

func newCipher(t *testing.T, info string) (*secrets.Cipher, []byte) {
	t.Helper()
	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	c, err := secrets.NewCipher(key, info)
	require.NoError(t, err)
	return c, key
}

func TestCipher_RoundTrip(t *testing.T) {
	t.Parallel()
	c, _ := newCipher(t, "test")

	sealed, err := c.Seal("auth_token", "tok1")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "tok1")

	plain, err := c.Open("auth_token", sealed)
	require.NoError(t, err)
	assert.Equal(t, "tok1", plain)
}

func TestCipher_NonceIsRandom(t *testing.T) {
	t.Parallel()
	c, _ := newCipher(t, "test")

	a, err := c.Seal("k", "same")
	require.NoError(t, err)
	b, err := c.Seal("k", "same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCipher_AssociatedDataMismatch(t *testing.T) {
	t.Parallel()
	c, _ := newCipher(t, "test")

	sealed, err := c.Seal("auth_token", "tok1")
	require.NoError(t, err)

	_, err = c.Open("auth_user", sealed)
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
}

func TestCipher_InfoSeparatesKeys(t *testing.T) {
	t.Parallel()
	key, err := secrets.GenerateKey()
	require.NoError(t, err)

	a, err := secrets.NewCipher(key, "purpose-a")
	require.NoError(t, err)
	b, err := secrets.NewCipher(key, "purpose-b")
	require.NoError(t, err)

	sealed, err := a.Seal("k", "v")
	require.NoError(t, err)
	_, err = b.Open("k", sealed)
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
}

func TestCipher_InvalidCiphertext(t *testing.T) {
	t.Parallel()
	c, _ := newCipher(t, "test")

	_, err := c.Open("k", "not base64 !!")
	assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)

	_, err = c.Open("k", "AAAA")
	assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
}

func TestNewCipher_InvalidKey(t *testing.T) {
	t.Parallel()
	_, err := secrets.NewCipher([]byte("short"), "x")
	assert.ErrorIs(t, err, secrets.ErrInvalidKey)
}

func TestEncodeDecodeKey(t *testing.T) {
	t.Parallel()
	key, err := secrets.GenerateKey()
	require.NoError(t, err)

	decoded, err := secrets.DecodeKey("  " + secrets.EncodeKey(key) + "\n")
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	_, err = secrets.DecodeKey("%%%")
	assert.ErrorIs(t, err, secrets.ErrInvalidKey)

	_, err = secrets.DecodeKey(secrets.EncodeKey([]byte(strings.Repeat("x", 16))))
	assert.ErrorIs(t, err, secrets.ErrInvalidKey)
}
