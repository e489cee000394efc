package internal

import (
	"fmt"
	"strings"
	"unicode"
)

// Version is the phrasebook release, reported by --version
const Version = "0.4.0"

// FormatOrdinal renders a 1-based position zero-padded to width 2 (01, 02, ... 10, 100)
func FormatOrdinal(n int) string {
	return fmt.Sprintf("%02d", n)
}

// SanitizeFilename creates a safe filename component from a string.
// Letters and digits of any script are kept so accented French and CJK
// section names survive.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is a letter or digit
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
