package utils

import "unicode"

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsValidInput checks if input should be processed for spell checking.
// Returns false for empty strings, pure numbers, and anything containing
// characters that never appear inside a word.
func IsValidInput(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) {
		return false
	}
	for _, r := range s {
		if !IsWordChar(r) {
			return false
		}
	}
	return true
}
