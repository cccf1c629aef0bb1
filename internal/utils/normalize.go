package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord canonicalizes a word for dictionary lookups and cache keys:
// NFC composition followed by lowercasing, with surrounding whitespace removed.
// "Hello" and "hello" normalize to the same string.
func NormalizeWord(word string) string {
	w := strings.TrimSpace(word)
	if w == "" {
		return ""
	}
	if !norm.NFC.IsNormalString(w) {
		w = norm.NFC.String(w)
	}
	return strings.ToLower(w)
}

// IsWordChar reports whether r can appear inside a checkable word.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || r == '\'' || r == '-'
}
