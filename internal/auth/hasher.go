// Package auth holds the credential primitives: password hashing, access
// tokens and opaque refresh tokens.
package auth

import (
	"crypto/rand"
	"crypto/subtle"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher hashes with a per-password salt that is stored next to the
// hash.
type PasswordHasher interface {
	Hash(password string) (hash, salt []byte, err error)
	Verify(password string, hash, salt []byte) bool
}

// Argon2Hasher implements PasswordHasher with argon2id.
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

func (h *Argon2Hasher) Hash(password string) ([]byte, []byte, error) {
	if password == "" {
		return nil, nil, ErrEmptyPassword
	}

	salt := make([]byte, h.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, oops.Code("AUTH_SALT_FAILED").Wrap(err)
	}

	return h.derive(password, salt), salt, nil
}

func (h *Argon2Hasher) Verify(password string, hash, salt []byte) bool {
	if len(hash) == 0 || len(salt) == 0 {
		return false
	}
	computed := argon2.IDKey([]byte(password), salt, h.Time, h.Memory, h.Threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(computed, hash) == 1
}

func (h *Argon2Hasher) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, h.Time, h.Memory, h.Threads, h.KeyLen)
}
