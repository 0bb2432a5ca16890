// Package utils holds small credential helpers shared by the auth
// stack: bcrypt password hashing and token generation.
package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of a plain password at the
// given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the plain password matches the hash.
// Comparison is constant time inside bcrypt.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
