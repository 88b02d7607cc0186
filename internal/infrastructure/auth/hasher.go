package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 128
)

// StrengthResult lists every rule a password violates.
type StrengthResult struct {
	IsValid bool
	Errors  []string
}

// Character classes are ASCII only: non-Latin letters and digits do not count.
const (
	asciiDigits = "0123456789"
	asciiLower  = "abcdefghijklmnopqrstuvwxyz"
	asciiUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// BcryptPasswordHasher hashes credentials with bcrypt. Inputs are pre-hashed
// with SHA-256 so passwords longer than bcrypt's 72-byte limit are accepted
// without silent truncation.
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func prehash(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A mismatch is not an error;
// a malformed hash is.
func (h *BcryptPasswordHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("password verification failed: %w", err)
	}
}

// ValidateStrength checks length 8-128, at least one digit, one lowercase and
// one uppercase letter, and rejects whitespace-only input.
func (h *BcryptPasswordHasher) ValidateStrength(password string) StrengthResult {
	var errs []string

	n := utf8.RuneCountInString(password)
	if n < PasswordMinLength {
		errs = append(errs, fmt.Sprintf("Password must be at least %d characters long", PasswordMinLength))
	}
	if n > PasswordMaxLength {
		errs = append(errs, fmt.Sprintf("Password must not exceed %d characters", PasswordMaxLength))
	}
	if !strings.ContainsAny(password, asciiDigits) {
		errs = append(errs, "Password must contain at least one number")
	}
	if !strings.ContainsAny(password, asciiLower) {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !strings.ContainsAny(password, asciiUpper) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if strings.TrimSpace(password) == "" {
		errs = append(errs, "Password cannot be only whitespace")
	}

	return StrengthResult{IsValid: len(errs) == 0, Errors: errs}
}

// BcryptTokenHasher stores refresh tokens as salted bcrypt digests of their SHA-256.
type BcryptTokenHasher struct {
	cost int
}

func NewBcryptTokenHasher(cost int) *BcryptTokenHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptTokenHasher{cost: cost}
}

func (h *BcryptTokenHasher) Hash(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(token), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash refresh token: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptTokenHasher) Matches(token, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(token)) == nil
}
