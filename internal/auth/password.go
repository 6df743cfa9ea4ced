package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// hashParams are the Argon2id cost settings baked into each stored hash.
// Verification reads them back from the PHC string, so these only govern
// newly created hashes.
type hashParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// defaultHashParams follows the OWASP low-memory Argon2id profile: 64 MiB,
// three passes, single lane.
var defaultHashParams = hashParams{
	memory:      64 * 1024,
	iterations:  3,
	parallelism: 1,
	saltLength:  16,
	keyLength:   32,
}

// HashPassword derives an Argon2id hash of password with a fresh random
// salt and encodes it as a PHC string.
func HashPassword(password string) (string, error) {
	p := defaultHashParams

	salt := make([]byte, p.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("reading salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, p.keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory, p.iterations, p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// VerifyPassword reports whether password matches the stored PHC hash.
// The cost settings come from the hash itself, so records written under
// older parameters keep verifying after defaults change.
func VerifyPassword(password, stored string) (bool, error) {
	p, salt, key, err := parsePasswordHash(stored)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, p.keyLength)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// parsePasswordHash splits a PHC string of the form
// $argon2id$v=19$m=65536,t=3,p=1$<salt>$<key> back into its parts.
func parsePasswordHash(stored string) (hashParams, []byte, []byte, error) {
	var p hashParams

	fields := strings.Split(stored, "$")
	if len(fields) != 6 || fields[0] != "" { //nolint:mnd // PHC strings carry six $-separated fields
		return p, nil, nil, fmt.Errorf("malformed password hash")
	}
	if fields[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("unexpected hash algorithm %q", fields[1])
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("parsing hash version: %w", err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("parsing hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decoding salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decoding key: %w", err)
	}
	p.saltLength = uint32(len(salt)) //nolint:gosec // G115: salt length fits uint32
	p.keyLength = uint32(len(key))   //nolint:gosec // G115: key length fits uint32

	return p, salt, key, nil
}
