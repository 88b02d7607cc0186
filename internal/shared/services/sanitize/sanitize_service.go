// Package sanitize strips markup from user-supplied free text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type TextSanitizer interface {
	// Text removes every HTML element and returns the trimmed plain text.
	Text(input string) string
	// Strings applies Text to each element and drops those left empty.
	Strings(input []string) []string
}

type textSanitizerImpl struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() TextSanitizer {
	return &textSanitizerImpl{policy: bluemonday.StrictPolicy()}
}

func (s *textSanitizerImpl) Text(input string) string {
	if input == "" {
		return ""
	}
	// StrictPolicy escapes entities; stored values are plain text, not HTML.
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(input)))
}

func (s *textSanitizerImpl) Strings(input []string) []string {
	if input == nil {
		return nil
	}
	out := make([]string, 0, len(input))
	for _, v := range input {
		if clean := s.Text(v); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
