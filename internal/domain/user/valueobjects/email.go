package valueobjects

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var folder = cases.Fold()

// Email is a canonical (trimmed, case-folded) email address.
type Email struct {
	value string
}

// NewEmail validates and canonicalises value. Two addresses differing only in
// letter case produce equal Emails.
func NewEmail(value string) (*Email, error) {
	normalized := folder.String(strings.TrimSpace(value))

	if normalized == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	if len(normalized) > 255 {
		return nil, fmt.Errorf("email cannot exceed 255 characters")
	}

	if !emailRegex.MatchString(normalized) {
		return nil, fmt.Errorf("invalid email format")
	}

	return &Email{value: normalized}, nil
}

// Canonicalize returns the lookup form of a raw address without validating it.
func Canonicalize(raw string) string {
	return folder.String(strings.TrimSpace(raw))
}

func (e *Email) String() string {
	return e.value
}

func (e *Email) Equals(other *Email) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.value == other.value
}
