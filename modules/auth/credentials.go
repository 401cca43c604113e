package auth

import (
	"fmt"
)

// CredentialStore looks up the expected secret for a username. A real
// identity store can be substituted without touching handler logic.
type CredentialStore interface {
	// FindCredential returns the bcrypt hash of the user's secret, or
	// ok=false when the username is unknown.
	FindCredential(username string) (hash string, ok bool)
}

// StaticCredentials is an in-memory credential table. Secrets are kept
// bcrypt-hashed and the table is fixed after construction.
type StaticCredentials struct {
	hashes map[string]string
}

// Compile-time interface check.
var _ CredentialStore = (*StaticCredentials)(nil)

// NewStaticCredentials builds a static table from plaintext pairs,
// hashing each secret at construction so no plaintext is retained.
func NewStaticCredentials(hasher *PasswordHasher, users map[string]string) (*StaticCredentials, error) {
	hashes := make(map[string]string, len(users))
	for username, secret := range users {
		hash, err := hasher.Hash(secret)
		if err != nil {
			return nil, fmt.Errorf("failed to hash credential for %q: %w", username, err)
		}
		hashes[username] = hash
	}
	return &StaticCredentials{hashes: hashes}, nil
}

// FindCredential implements CredentialStore.
func (s *StaticCredentials) FindCredential(username string) (string, bool) {
	hash, ok := s.hashes[username]
	return hash, ok
}
