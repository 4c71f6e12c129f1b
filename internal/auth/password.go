// Package auth holds the credential primitives: password hashing and
// bearer-token issuance. Both are pure with respect to storage; persistence
// and transport live elsewhere.
package auth

import "golang.org/x/crypto/bcrypt"

// hashCost matches the work factor the original deployment used. Raising it
// invalidates nothing (the cost is embedded per digest) but slows new signups.
const hashCost = 10

// HashPassword produces a salted bcrypt digest of plaintext.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches digest. A mismatch or a
// malformed digest both return false; this function never exposes an error
// to the caller.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
