package helpers

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor. Tests may lower it.
var PasswordCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of plain. Inputs past bcrypt's 72 byte
// limit are refused instead of being truncated.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CompareHashAndPassword reports whether plain matches hash. Malformed hashes
// never match.
func CompareHashAndPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
