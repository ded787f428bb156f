package validator

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims, collapses inner whitespace and converts to NFC so
// visually identical names compare equal.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// NormalizeEmail only trims. Addresses are stored and compared as typed.
func NormalizeEmail(s string) string {
	return strings.TrimSpace(s)
}
