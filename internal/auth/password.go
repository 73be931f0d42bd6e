// Package auth provides the password hashing collaborator for the user
// store. Hashing is an interface so tests can substitute a cheap double
// and deployments can tune the work factor.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher transforms plaintext credentials before persistence.
// Implementations must be one-way and deterministic-verifiable; the hash
// must never compare equal to the plaintext.
type PasswordHasher interface {
	// Hash returns the storable form of a plaintext password.
	Hash(password string) (string, error)

	// Compare reports whether plaintext matches a stored hash.
	// Returns nil on match, an error otherwise.
	Compare(hash, password string) error
}

// BcryptHasher implements PasswordHasher with bcrypt, a salted adaptive
// hash. bcrypt embeds a per-hash random salt, so equal passwords produce
// different hashes.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. Costs below
// bcrypt.DefaultCost are raised to it; fast unsalted hashing of
// credentials is not an alternate design, it is a regression.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.DefaultCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a salted bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare checks a plaintext password against a stored hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
