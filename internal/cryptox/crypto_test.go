package cryptox

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveMasterKey(password, salt)
	key2 := DeriveMasterKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	assert.Len(t, key1, 32)
}

func TestDeriveMasterKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveMasterKey(password, []byte("salt-1"))
	key2 := DeriveMasterKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	encoded, err := HashPassword([]byte("hunter2"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "argon2id$"))

	ok, err := VerifyPassword(encoded, []byte("hunter2"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHashPassword_ExactMatchOnly(t *testing.T) {
	encoded, err := HashPassword([]byte("Secret"))
	require.NoError(t, err)

	for _, candidate := range []string{"secret", "Secret ", " Secret", "Secre", ""} {
		ok, err := VerifyPassword(encoded, []byte(candidate))
		require.NoError(t, err)
		assert.False(t, ok, "candidate %q must not match", candidate)
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := HashPassword([]byte("same"))
	require.NoError(t, err)
	b, err := HashPassword([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_SaltError(t *testing.T) {
	old := randomSalt
	t.Cleanup(func() { randomSalt = old })
	boom := errors.New("entropy exhausted")
	randomSalt = func(int) ([]byte, error) { return nil, boom }

	encoded, err := HashPassword([]byte("pw"))
	require.ErrorIs(t, err, boom)
	assert.Empty(t, encoded)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"argon2id$zz$00",
		"bcrypt$00$00",
		"argon2id$00ff$abcd",
		"argon2id$$" + strings.Repeat("00", 32),
	}
	for _, c := range cases {
		_, err := VerifyPassword(c, []byte("x"))
		assert.ErrorIs(t, err, ErrMalformedHash, "input %q", c)
	}
}
