package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is shared by patient and doctor accounts.
const PasswordHashCost = bcrypt.DefaultCost

// HashPassword fails for inputs over bcrypt's 72 byte limit instead of
// silently truncating them.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SecretsEqual compares shared secrets in constant time. An empty expected
// value never matches so an unset key cannot open a route.
func SecretsEqual(given, expected string) bool {
	if given == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}
