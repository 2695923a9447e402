package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/okdong/marketplace/internal/common"
)

// MinPasswordLength is the policy floor enforced before hashing.
const MinPasswordLength = 6

// HashPassword hashes a plaintext password with bcrypt (default cost).
// Passwords shorter than MinPasswordLength fail with common.ErrPasswordPolicy
// before any hashing work is done.
func HashPassword(password string) (string, error) {
	if len([]rune(password)) < MinPasswordLength {
		return "", common.ErrPasswordPolicy
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext candidate against a stored bcrypt hash.
// A mismatch returns (false, nil); only a malformed stored hash produces an
// error (common.ErrCorruptCredential).
func CheckPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, common.ErrCorruptCredential
}
