package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

// sealedPrefix marks a value sealed by Sealer. Format: enc:v1:base64(nonce|box).
const sealedPrefix = "enc:v1:"

const (
	keySize   = 32
	nonceSize = 24
)

var (
	ErrNoKey     = errors.New("credential: value is sealed but no key is configured")
	ErrMalformed = errors.New("credential: malformed sealed value")
	ErrWrongKey  = errors.New("credential: sealed value cannot be opened with the configured key")
	hkdfInfo     = []byte("nitrodesk credential v1")
)

// Sealer encrypts secrets at rest with NaCl secretbox. A Sealer without a
// key stores values as plaintext and still reads plaintext rows, so a key can
// be introduced later without a data migration.
type Sealer struct {
	key *[keySize]byte
}

// NewSealer accepts a 32-byte key as hex or base64. Any other non-empty
// string is treated as a passphrase and stretched with HKDF-SHA256.
func NewSealer(rawKey string) (*Sealer, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		return &Sealer{}, nil
	}

	key, err := parseKey(rawKey)
	if err != nil {
		return nil, err
	}
	return &Sealer{key: key}, nil
}

func parseKey(rawKey string) (*[keySize]byte, error) {
	var key [keySize]byte

	if b, err := hex.DecodeString(rawKey); err == nil && len(b) == keySize {
		copy(key[:], b)
		return &key, nil
	}
	if b, err := base64.StdEncoding.DecodeString(rawKey); err == nil && len(b) == keySize {
		copy(key[:], b)
		return &key, nil
	}

	r := hkdf.New(sha256.New, []byte(rawKey), nil, hkdfInfo)
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return nil, fmt.Errorf("credential: failed to derive key: %w", err)
	}
	return &key, nil
}

// Enabled reports whether values are sealed on write.
func (s *Sealer) Enabled() bool {
	return s.key != nil
}

// Seal returns the at-rest form of plaintext. Empty stays empty.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" || s.key == nil {
		return plaintext, nil
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("credential: failed to read nonce: %w", err)
	}

	out := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, s.key)
	return sealedPrefix + base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. Values without the sealed prefix are returned as-is.
func (s *Sealer) Open(stored string) (string, error) {
	if !IsSealed(stored) {
		return stored, nil
	}
	if s.key == nil {
		return "", ErrNoKey
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrMalformed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, s.key)
	if !ok {
		return "", ErrWrongKey
	}
	return string(plain), nil
}

func IsSealed(value string) bool {
	return strings.HasPrefix(value, sealedPrefix)
}
