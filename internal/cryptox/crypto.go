// Package cryptox derives and checks password verifiers for local accounts.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/starly/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize     = 32
	hashedPrefix = "argon2id"
)

// ErrMalformedHash is returned when a stored password value cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

// randomSalt is an indirection used to facilitate testing.
var randomSalt = common.GenerateRandByteArray

// MakeVerifier turns a derived master key into the value kept at rest.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// DeriveMasterKey stretches password with salt using argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword encodes password as "argon2id$<salt>$<verifier>" with a fresh
// random salt. Two calls with the same password give different strings.
func HashPassword(password []byte) (string, error) {
	salt, err := randomSalt(saltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return encode(salt, MakeVerifier(DeriveMasterKey(password, salt))), nil
}

// VerifyPassword reports whether password matches the encoded value produced
// by HashPassword. Comparison of the verifiers runs in constant time.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	salt, verifier, err := decode(encoded)
	if err != nil {
		return false, err
	}

	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)

	candidate := MakeVerifier(key)
	return subtle.ConstantTimeCompare(verifier, candidate) == 1, nil
}

func encode(salt, verifier []byte) string {
	return hashedPrefix + "$" + hex.EncodeToString(salt) + "$" + hex.EncodeToString(verifier)
}

func decode(encoded string) (salt, verifier []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashedPrefix {
		return nil, nil, ErrMalformedHash
	}
	if salt, err = hex.DecodeString(parts[1]); err != nil || len(salt) == 0 {
		return nil, nil, ErrMalformedHash
	}
	if verifier, err = hex.DecodeString(parts[2]); err != nil || len(verifier) != sha256.Size {
		return nil, nil, ErrMalformedHash
	}
	return salt, verifier, nil
}
