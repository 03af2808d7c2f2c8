package textutil

import (
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first rune, turning a tenant slug like
// "acme" into its display name "Acme".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
