package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// capitalize derives the casing of a substituted value from the way the
// symbol was spelled at its use site.
//
// A lower-case spelling leaves the content untouched. A spelling that
// starts upper-case but contains lower-case letters upper-cases only the
// first rune. An all-caps spelling upper-cases the whole content.
func capitalize(symbol, content string) string {
	if strings.IndexFunc(symbol, unicode.IsUpper) != 0 {
		return content
	}
	if strings.IndexFunc(symbol, unicode.IsLower) >= 0 {
		r, size := utf8.DecodeRuneInString(content)
		if size == 0 {
			return content
		}
		return string(unicode.ToUpper(r)) + content[size:]
	}
	return strings.ToUpper(content)
}
