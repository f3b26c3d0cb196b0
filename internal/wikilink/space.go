package wikilink

import (
	"strings"
	"unicode"
)

// isSpace reports whether r is trimmed from link content. The set is the
// ECMAScript one: Unicode White_Space without U+0085, plus U+FEFF.
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
