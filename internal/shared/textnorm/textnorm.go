// Package textnorm normalizes Portuguese free text before keyword and
// name matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Soft hyphens and typographic dashes show up in copy-pasted queries and
// break substring matching.
var dashCleaner = strings.NewReplacer(
	"­", "",
	"‑", "",
	"–", "",
	"—", "",
)

// CleanMessage removes invisible hyphenation characters from a raw message.
func CleanMessage(s string) string {
	return dashCleaner.Replace(s)
}

// Fold lowercases and strips diacritics ("Líquido" -> "liquido").
func Fold(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// NameKey derives the matching key for an employee name: punctuation
// stripped, case folded, whitespace trimmed and collapsed. Accents are
// kept, the dataset and the roster agree on them.
func NameKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
