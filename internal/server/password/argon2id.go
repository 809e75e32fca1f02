package password

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters.
const (
	Argon2Memory      uint32 = 64 * 1024 // KiB
	Argon2Iterations  uint32 = 3
	Argon2Parallelism uint8  = 2
	Argon2SaltLength         = 16
	Argon2KeyLength   uint32 = 32
)

var b64 = base64.RawStdEncoding

// Argon2id encodes hashes in PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
//
// Verify reads the parameters back from the hash, so hashes made with older
// constants keep verifying after the constants change.
type Argon2id struct{}

func (Argon2id) Hash(secret string) (string, error) {
	salt := common.GenerateRandByteArray(Argon2SaltLength)
	key := argon2.IDKey([]byte(secret), salt, Argon2Iterations, Argon2Memory, Argon2Parallelism, Argon2KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, Argon2Memory, Argon2Iterations, Argon2Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

func (Argon2id) Verify(secret, hashed string) bool {
	p, salt, key, err := decodeArgon2id(hashed)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(secret), salt, p.iterations, p.memory, p.parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

func decodeArgon2id(hashed string) (argon2Params, []byte, []byte, error) {
	var p argon2Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(hashed, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("not an argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("version: %w", err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("params: %w", err)
	}
	if p.memory == 0 || p.iterations == 0 || p.parallelism == 0 {
		return p, nil, nil, fmt.Errorf("zero argon2 parameter")
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("salt: %w", err)
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("key: invalid encoding")
	}

	return p, salt, key, nil
}
