package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt work factor.
const BcryptCost = 10

// bcrypt ignores input past 72 bytes; longer secrets are refused instead.
const bcryptMaxSecretLen = 72

type Bcrypt struct{}

func (Bcrypt) Hash(secret string) (string, error) {
	if len(secret) > bcryptMaxSecretLen {
		return "", fmt.Errorf("%w: bcrypt accepts at most %d bytes", ErrSecretTooLong, bcryptMaxSecretLen)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(h), nil
}

func (Bcrypt) Verify(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}
