package record

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSubject returns the canonical form of a subject key.
//
// Input is NFC-normalized, trimmed and title-cased, so "john smith",
// "JOHN SMITH" and " John Smith " all map to "John Smith". An apostrophe
// starts a new word: "o'brien" becomes "O'Brien".
func NormalizeSubject(raw string) string {
	s := strings.TrimSpace(norm.NFC.String(raw))
	// A Caser holds state and is not safe for concurrent use.
	caser := cases.Title(language.Und)

	var b strings.Builder
	start := 0
	for i, r := range s {
		if r != '\'' && r != '’' {
			continue
		}
		b.WriteString(caser.String(s[start:i]))
		b.WriteRune(r)
		start = i + utf8.RuneLen(r)
	}
	b.WriteString(caser.String(s[start:]))
	return b.String()
}

// SameSubject reports whether two raw keys normalize to the same subject.
func SameSubject(a, b string) bool {
	return NormalizeSubject(a) == NormalizeSubject(b)
}
