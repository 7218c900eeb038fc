// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher derives and verifies one-way digests of account passwords.
// The plaintext never touches storage; only the digest does.
type PasswordHasher interface {
	// Hash generates a salted, slow digest from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the digest.
	// A malformed digest is a mismatch, never an error.
	Check(password, hash string) bool
}
