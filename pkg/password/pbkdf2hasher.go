package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// KDF parameters. These are fixed process-wide: stored digests were
// produced with them, so changing any of them invalidates every stored
// credential.
const (
	DefaultSaltLength = 16
	DefaultIterations = 10000
	DefaultKeyLength  = 512
)

// Pbkdf2Hasher implements Hasher using PBKDF2 with SHA-512.
//
// The KDF is keyed with the hex form of the salt rather than its raw
// bytes; stored digests were derived that way and must keep verifying.
type Pbkdf2Hasher struct {
	saltLength int
	iterations int
	keyLength  int
}

// Option is a function that configures a Pbkdf2Hasher
type Option func(*Pbkdf2Hasher)

// WithIterations sets the PBKDF2 iteration count
func WithIterations(n int) Option {
	return func(h *Pbkdf2Hasher) {
		if n > 0 {
			h.iterations = n
		}
	}
}

// WithKeyLength sets the derived key length in bytes
func WithKeyLength(n int) Option {
	return func(h *Pbkdf2Hasher) {
		if n > 0 {
			h.keyLength = n
		}
	}
}

// NewPbkdf2Hasher creates a PBKDF2-SHA512 password hasher with the
// default parameters
func NewPbkdf2Hasher(opts ...Option) *Pbkdf2Hasher {
	h := &Pbkdf2Hasher{
		saltLength: DefaultSaltLength,
		iterations: DefaultIterations,
		keyLength:  DefaultKeyLength,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash generates a fresh random salt and derives the digest from the
// password. Salt and digest are returned hex encoded.
func (h *Pbkdf2Hasher) Hash(password string) (string, string, error) {
	if password == "" {
		return "", "", errors.New("password cannot be empty")
	}

	raw := make([]byte, h.saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generating salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	digest := h.derive(password, salt)
	return salt, hex.EncodeToString(digest), nil
}

// Verify recomputes the digest for the password with the stored salt and
// compares it to the stored digest in constant time.
func (h *Pbkdf2Hasher) Verify(password, salt, digest string) (bool, error) {
	if password == "" {
		return false, nil
	}

	if raw, err := hex.DecodeString(salt); err != nil || len(raw) < h.saltLength {
		return false, MalformedCredentialError{Field: "salt"}
	}
	stored, err := hex.DecodeString(digest)
	if err != nil || len(stored) != h.keyLength {
		return false, MalformedCredentialError{Field: "digest"}
	}

	computed := h.derive(password, salt)
	return subtle.ConstantTimeCompare(computed, stored) == 1, nil
}

func (h *Pbkdf2Hasher) derive(password, salt string) []byte {
	return pbkdf2.Key([]byte(password), []byte(salt), h.iterations, h.keyLength, sha512.New)
}
