package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

func newRule(field, message string, check func() bool) Rule {
	return Rule{Check: check, Error: ValidationError{Field: field, Message: message}}
}

// Required fails for empty or whitespace-only values.
func Required(field, value string) Rule {
	return newRule(field, "field is required", func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MinChars counts runes, not bytes.
func MinChars(field, value string, min int) Rule {
	return newRule(field, fmt.Sprintf("must be at least %d characters long", min), func() bool {
		return utf8.RuneCountInString(value) >= min
	})
}

// MaxChars counts runes, not bytes.
func MaxChars(field, value string, max int) Rule {
	return newRule(field, fmt.Sprintf("must be at most %d characters long", max), func() bool {
		return utf8.RuneCountInString(value) <= max
	})
}

// ValidEmail accepts a bare address only, display names are rejected.
func ValidEmail(field, value string) Rule {
	return newRule(field, "must be a valid email address", func() bool {
		addr, err := mail.ParseAddress(value)
		return err == nil && addr.Name == "" && addr.Address == value
	})
}

// IsTrue is used for mandatory checkboxes such as terms acceptance.
func IsTrue(field string, value bool, message string) Rule {
	return newRule(field, message, func() bool { return value })
}

func PasswordUppercase(field, value string) Rule {
	return newRule(field, "must contain at least one uppercase letter", func() bool {
		return strings.IndexFunc(value, unicode.IsUpper) >= 0
	})
}

func PasswordDigit(field, value string) Rule {
	return newRule(field, "must contain at least one digit", func() bool {
		return strings.IndexFunc(value, unicode.IsDigit) >= 0
	})
}

// PasswordSymbol requires a character that is neither a letter, a digit nor a space.
func PasswordSymbol(field, value string) Rule {
	return newRule(field, "must contain at least one special character", func() bool {
		return strings.IndexFunc(value, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
		}) >= 0
	})
}

// PasswordEntropy rejects passwords whose estimated entropy in bits is below min.
func PasswordEntropy(field, value string, min float64) Rule {
	return newRule(field, "is too easy to guess", func() bool {
		return passwordvalidator.GetEntropy(value) >= min
	})
}
