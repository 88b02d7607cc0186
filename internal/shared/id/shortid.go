// Package id generates Stripe-style prefixed identifiers ("usr_3fK9mP2vL3nQ").
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

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 16
)

const (
	PrefixUser     = "usr"
	PrefixSession  = "ses"
	PrefixTodolist = "tdl"
	PrefixTask     = "tsk"
)

var alphabetLen = big.NewInt(int64(len(alphabet)))

// Generate creates a cryptographically random Base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	for i := range result {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}
	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

func NewUserID() (string, error) { return GenerateWithPrefix(PrefixUser, DefaultLength) }
func NewSessionID() (string, error) { return GenerateWithPrefix(PrefixSession, DefaultLength) }
func NewTodolistID() (string, error) { return GenerateWithPrefix(PrefixTodolist, DefaultLength) }
func NewTaskID() (string, error) { return GenerateWithPrefix(PrefixTask, DefaultLength) }

// ParsePrefixedID splits "prefix_short" at the first underscore.
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return parts[0], parts[1], nil
}

// ValidatePrefix checks that the ID carries the expected prefix and a non-empty Base62 body.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, shortID, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	if shortID == "" {
		return fmt.Errorf("empty id after prefix %s", prefix)
	}
	for _, r := range shortID {
		if !strings.ContainsRune(alphabet, r) {
			return fmt.Errorf("invalid character %q in id", r)
		}
	}
	return nil
}
