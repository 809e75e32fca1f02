// Package password hashes and verifies user secrets.
//
// Two algorithms are available: bcrypt (default) and argon2id. Costs are
// compile-time constants; only the algorithm is chosen at start-up.
package password

import (
	"errors"
	"fmt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown password hashing algorithm")
	ErrSecretTooLong    = errors.New("secret too long")
)

// Hasher turns secrets into salted one-way hashes and checks secrets against
// them. Implementations are safe for concurrent use.
type Hasher interface {
	// Hash returns a new encoded hash. Two calls with the same secret return
	// different values.
	Hash(secret string) (string, error)

	// Verify reports whether secret produced hashed. Malformed or foreign
	// hashes yield false.
	Verify(secret, hashed string) bool
}

// New returns the Hasher for algorithm. An empty name selects bcrypt.
func New(algorithm string) (Hasher, error) {
	switch algorithm {
	case "", AlgorithmBcrypt:
		return Bcrypt{}, nil
	case AlgorithmArgon2id:
		return Argon2id{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}
