package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/askboard-dev/askboard/internal/errors"
	"github.com/microcosm-cc/bluemonday"
)

// strict strips every HTML element from user-supplied text; bodies are
// stored as plain text.
var strict = bluemonday.StrictPolicy()

type BodyTextValidator struct {
	MaxLen int
}

// Text sanitizes and bounds user-supplied body text, returning the cleaned
// form to persist.
func (v *BodyTextValidator) Text(text string) (string, error) {
	text = strings.TrimSpace(strict.Sanitize(text))
	if len(text) == 0 {
		return "", &errors.ErrorWithStatusCode{Message: "Text is too short", StatusCode: 400}
	}
	maxLen := v.MaxLen
	if maxLen == 0 {
		maxLen = 10_000
	}
	if utf8.RuneCountInString(text) > maxLen {
		return "", &errors.ErrorWithStatusCode{Message: "Text is too long", StatusCode: 400}
	}
	return text, nil
}

// ValidateUsername accepts 3-32 letters, digits and underscores.
func ValidateUsername(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 3 || n > 32 {
		return &errors.ErrorWithStatusCode{Message: "Username must be 3-32 characters", StatusCode: 400}
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return &errors.ErrorWithStatusCode{Message: "Username may contain only letters, digits and underscores", StatusCode: 400}
		}
	}
	return nil
}
