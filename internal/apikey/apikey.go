// Package apikey hashes and verifies API keys with Argon2id so deployments
// can configure a hash instead of the plaintext key.
package apikey

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
	keyLen        = 32
)

const hashPrefix = "$argon2id$"

// ErrInvalidHash is returned for a malformed encoded hash.
var ErrInvalidHash = errors.New("invalid argon2id hash")

// IsHash reports whether s looks like an encoded Argon2id hash rather than a
// plaintext key.
func IsHash(s string) bool {
	return strings.HasPrefix(s, hashPrefix)
}

// Generate returns a new random key, URL-safe base64 encoded.
func Generate() (string, error) {
	b := make([]byte, keyLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Hash encodes key as $argon2id$v=19$m=65536,t=1,p=4$salt$hash.
func Hash(key string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	sum := argon2.IDKey([]byte(key), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		hashPrefix, argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Bounds on the parameters of a configured hash. argon2.IDKey panics on
// zero rounds or threads and allocates memory KiB up front.
const (
	maxTime      = 16
	maxMemoryKiB = 1 << 20 // 1 GiB
	minSaltLen   = 8
	minHashLen   = 16
)

type encodedHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	sum     []byte
}

func decodeHash(encoded string) (*encodedHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, ErrInvalidHash
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrInvalidHash, parts[2])
	}

	var h encodedHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &h.threads); err != nil {
		return nil, fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}
	if h.time < 1 || h.time > maxTime {
		return nil, fmt.Errorf("%w: t=%d outside 1-%d", ErrInvalidHash, h.time, maxTime)
	}
	if h.threads < 1 {
		return nil, fmt.Errorf("%w: p must be at least 1", ErrInvalidHash)
	}
	if minMemory := 8 * uint32(h.threads); h.memory < minMemory || h.memory > maxMemoryKiB {
		return nil, fmt.Errorf("%w: m=%d outside %d-%d", ErrInvalidHash, h.memory, minMemory, maxMemoryKiB)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if len(h.salt) < minSaltLen {
		return nil, fmt.Errorf("%w: salt shorter than %d bytes", ErrInvalidHash, minSaltLen)
	}

	if h.sum, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: hash: %v", ErrInvalidHash, err)
	}
	if len(h.sum) < minHashLen {
		return nil, fmt.Errorf("%w: hash shorter than %d bytes", ErrInvalidHash, minHashLen)
	}

	return &h, nil
}

// CheckHash validates the format and parameters of an encoded hash without
// running the key derivation.
func CheckHash(encoded string) error {
	_, err := decodeHash(encoded)
	return err
}

// Verify reports whether key matches the encoded hash.
func Verify(key, encoded string) (bool, error) {
	h, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(key), h.salt, h.time, h.memory, h.threads, uint32(len(h.sum)))

	return subtle.ConstantTimeCompare(h.sum, got) == 1, nil
}

// Match checks key against configured, which is either a plaintext key or an
// encoded hash.
func Match(key, configured string) (bool, error) {
	if IsHash(configured) {
		return Verify(key, configured)
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(configured)) == 1, nil
}
