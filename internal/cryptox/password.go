// Package cryptox implements the one-way password hashing used by the
// credential store. New hashes are argon2id in the PHC string format; bcrypt
// hashes are still accepted on verify.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userauth/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash is returned when a stored hash cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher hashes plaintext passwords and checks candidates against a
// stored hash. Verify returns (false, nil) on a plain mismatch.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// Argon2Hasher produces "$argon2id$v=19$m=...,t=...,p=...$salt$key" strings.
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// NewArgon2Hasher returns a hasher with the project defaults
// (t=1, m=64MiB, p=4, 32-byte key, 16-byte salt).
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

var b64 = base64.RawStdEncoding

// Limits accepted from a stored hash. argon2.IDKey panics on t=0 or p=0 and
// allocates m KiB up front.
const (
	maxArgonTime   = 64
	maxArgonMemory = 1 << 21 // 2 GiB
)

func validArgonParams(time, memory uint32, threads uint8) bool {
	return time >= 1 && time <= maxArgonTime &&
		threads >= 1 &&
		memory >= 8*uint32(threads) && memory <= maxArgonMemory
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	if h.SaltLen <= 0 || h.KeyLen == 0 || !validArgonParams(h.Time, h.Memory, h.Threads) {
		return "", fmt.Errorf("argon2: invalid parameters")
	}
	salt := common.GenerateRandByteArray(h.SaltLen)
	key := argon2.IDKey([]byte(password), salt, h.Time, h.Memory, h.Threads, h.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.Memory, h.Time, h.Threads, b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify checks password against an argon2id or bcrypt hash. The parameters
// embedded in the hash are used, not the receiver's.
func (h *Argon2Hasher) Verify(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return verifyArgon2(password, encoded)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return verifyBcrypt(password, encoded)
	}
	return false, ErrMalformedHash
}

func verifyArgon2(password, encoded string) (bool, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrMalformedHash
	}
	if !validArgonParams(time, memory, threads) {
		return false, ErrMalformedHash
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := b64.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func verifyBcrypt(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
}
