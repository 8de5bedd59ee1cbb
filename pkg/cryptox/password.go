package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Configuration for PBKDF2 key derivation. Stored hashes are only comparable
// when recomputed with the same parameters and salt, so changing these
// invalidates every stored credential.
const (
	iterations = 10000 // PBKDF2 iteration count
	keyLength  = 32    // Length of the derived key in bytes
	saltLength = 32    // Length of the salt in bytes (256 bits)
)

// ErrInvalidInput reports a caller contract violation: an empty password,
// salt, or hash where a value is required.
var ErrInvalidInput = errors.New("cryptox: empty password, salt, or hash")

// GenerateSalt produces a fresh cryptographically random salt, encoded as
// standard base64. Salts must never be shared between accounts.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// HashPassword derives a PBKDF2-SHA256 key from the password and the
// base64-encoded salt. The derivation is deterministic for a given
// password+salt pair and the result is base64 encoded for storage.
func HashPassword(password, salt string) (string, error) {
	if password == "" || salt == "" {
		return "", ErrInvalidInput
	}

	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("cryptox: invalid salt encoding: %w", err)
	}

	key := pbkdf2.Key([]byte(password), rawSalt, iterations, keyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword recomputes the hash for the password+salt pair and compares
// it against the expected hash in constant time.
func VerifyPassword(password, salt, expectedHash string) (bool, error) {
	if password == "" || salt == "" || expectedHash == "" {
		return false, ErrInvalidInput
	}

	computed, err := HashPassword(password, salt)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(expectedHash)) == 1, nil
}
