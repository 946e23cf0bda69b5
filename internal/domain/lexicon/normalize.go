package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s and strips diacritics so "Técnica" and "tecnica"
// match the same keyword.
func Normalize(s string) string {
	// transform.Chain keeps internal buffers, so a fresh chain is built per call.
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(folder, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// normalizeKey turns a context value such as "Competition Phase" or
// "pre_competition" into a lookup key ("competition", "pre-competition").
func normalizeKey(s string) string {
	k := Normalize(strings.TrimSpace(s))
	k = strings.Join(strings.FieldsFunc(k, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '-'
	}), "-")
	for _, suffix := range []string{"-phase", "-fase"} {
		k = strings.TrimSuffix(k, suffix)
	}
	for _, prefix := range []string{"phase-", "fase-de-", "fase-"} {
		k = strings.TrimPrefix(k, prefix)
	}
	return k
}

// Document is a text prepared for matching against a Lexicon.
type Document struct {
	Raw  string
	Text string // normalized
}

// Prepare normalizes raw once so every extractor works on the same text.
func Prepare(raw string) Document {
	return Document{Raw: raw, Text: Normalize(raw)}
}
