package syllabus

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalizeSpace collapses whitespace runs, non-breaking spaces included, to
// one space. Combining sequences are composed (NFC) so equal topics compare
// equal; compatibility characters such as ½ or ligatures are left alone.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
