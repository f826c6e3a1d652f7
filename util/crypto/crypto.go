// Package crypto provides password hashing and verification.
package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"user-admin/config"
)

// HashPassword generates a bcrypt hash of the given password using the
// configured cost factor.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.GetBcryptCost())
	return string(hash), err
}

// CheckPasswordHash verifies the given password against a bcrypt hash.
func CheckPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
