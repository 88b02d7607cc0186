package todolist

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/tasknest/tasknest/internal/shared/errors"
)

const (
	TitleMinLen           = 3
	TitleMaxLen           = 50
	ListDescriptionMinLen = 5
	ListDescriptionMaxLen = 500
	TaskDescriptionMinLen = 3
	TaskDescriptionMaxLen = 200
	MaxTagsPerTask        = 20
	MaxTagLen             = 32
)

func validateLength(field, value string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n < minLen || n > maxLen {
		return errors.NewValidationError(field+" has an invalid length",
			fmt.Sprintf("%s must be between %d and %d characters", field, minLen, maxLen))
	}
	return nil
}

func validateImageURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewValidationError("Invalid image URL")
	}
	return nil
}

func normalizeTags(tags []string) ([]string, error) {
	if len(tags) > MaxTagsPerTask {
		return nil, errors.NewValidationError("too many tags")
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if utf8.RuneCountInString(t) > MaxTagLen {
			return nil, errors.NewValidationError("tag is too long")
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
