package sentimento

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text and strips every rune that is neither a word
// character (letter, digit, underscore) nor whitespace. The input is composed
// to NFC first so that "ó" typed as "o" + U+0301 matches the lexicon.
func Normalize(text string) string {
	lower := strings.ToLower(norm.NFC.String(text))
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, lower)
}

// IsBlank reports whether text is empty or whitespace-only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// normalizedTokens splits normalized text on whitespace.
func normalizedTokens(text string) []string {
	return strings.Fields(Normalize(text))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
