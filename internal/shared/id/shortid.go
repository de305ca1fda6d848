package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 14
)

// Stripe-style prefixes per entity.
const (
	PrefixCustomer     = "cus"
	PrefixNotification = "ntf"
	PrefixActivity     = "act"
)

// Generate returns a cryptographically random base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result), nil
}

// GenerateWithPrefix returns "prefix_xxxxxxxx".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

func mustPrefixed(prefix string) string {
	s, err := GenerateWithPrefix(prefix, DefaultLength)
	if err != nil {
		panic(err)
	}
	return s
}

func NewCustomerID() string     { return mustPrefixed(PrefixCustomer) }
func NewNotificationID() string { return mustPrefixed(PrefixNotification) }
func NewActivityID() string     { return mustPrefixed(PrefixActivity) }

// ValidatePrefix checks that prefixedID has the form "<expected>_<non-empty>".
func ValidatePrefix(prefixedID, expected string) error {
	prefix, rest, ok := strings.Cut(prefixedID, "_")
	if !ok || rest == "" {
		return fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	if prefix != expected {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expected, prefix)
	}
	return nil
}
