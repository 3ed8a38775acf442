// Package phone canonicalizes Japanese phone numbers into the E.164 form
// the identity provider expects as a username.
package phone

import (
	"regexp"
	"strings"

	apperrors "github.com/echnavi/charge-admin-backend/pkg/errors"
)

var (
	nonDigits = regexp.MustCompile(`\D`)
	canonical = regexp.MustCompile(`^\+81[1-9]\d{9}$`)
)

// Canonicalize normalizes raw into +81 E.164 form. Separators and other
// non-digit characters are stripped before the prefix rules apply:
// a leading 0 becomes +81, a leading 81 gains the +, anything else is
// assumed to be a national number missing its trunk prefix.
func Canonicalize(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return "", apperrors.New(apperrors.CodeValidation, "phone number is required")
	}

	var e164 string
	switch {
	case strings.HasPrefix(digits, "0"):
		e164 = "+81" + digits[1:]
	case strings.HasPrefix(digits, "81"):
		e164 = "+" + digits
	default:
		e164 = "+81" + digits
	}

	if !canonical.MatchString(e164) {
		return "", apperrors.New(apperrors.CodeValidation, "invalid phone number")
	}
	return e164, nil
}

// IsCanonical reports whether s is already in the stored +81 form.
func IsCanonical(s string) bool {
	return canonical.MatchString(s)
}
