// Package password hashes and verifies the per-review edit/delete passwords.
// Reviews are anonymous; the password supplied at creation time is the only
// credential that authorizes later mutation.
package password

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// cost is bcrypt's work factor. bcrypt.DefaultCost (10) matches what the rest
// of the system was benchmarked against.
const cost = bcrypt.DefaultCost

// Hash produces a salted one-way hash of plain. A hashing failure is returned
// to the caller and aborts the surrounding operation.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hash. Any comparison failure degrades
// to false: a mismatch silently, anything else (a malformed stored hash) with
// a logged anomaly. Verify never returns an error so callers can treat the
// result as a plain authorization decision.
func Verify(plain, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		log.Printf("password: compare failed: %v", err)
	}
	return false
}
