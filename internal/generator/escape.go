package generator

import "strings"

// Escaped literals are rewritten to readable placeholder tokens before a
// symbol or variant enters the table, so the marker-syntax patterns never
// misfire on them. The placeholders survive every intermediate pass and are
// turned back into literals exactly once, on the final output string.

var escapeTags = map[string]string{
	" ": "space",
	"~": "tilde",
	"[": "leftsquare",
	"]": "rightsquare",
	"{": "leftcurly",
	"}": "rightcurly",
	"/": "slash",
	"·": "median",
}

var escapeLiterals = map[string]string{
	"space":       " ",
	"tilde":       "~",
	"leftsquare":  "[",
	"rightsquare": "]",
	"leftcurly":   "{",
	"rightcurly":  "}",
	"slash":       "/",
	"median":      "·",
}

// escape replaces every `~` + literal pair with its placeholder token.
// A `~` followed by an unrecognized character drops the marker and keeps
// the character.
func escape(s string) string {
	if !reEscape.MatchString(s) {
		return s
	}
	return reEscape.ReplaceAllStringFunc(s, func(m string) string {
		c := m[1:]
		if tag, ok := escapeTags[c]; ok {
			return "~<" + tag + ">"
		}
		return c
	})
}

// unescape is the exact inverse of escape, applied only on the fully
// assembled output of a top-level expansion. Placeholder tags are folded to
// lower case first so that full-uppercase capitalization of a substituted
// value cannot corrupt them. An unknown tag cannot be produced by
// escape and indicates an engine bug.
func unescape(s string) string {
	if !reUnescape.MatchString(s) {
		return s
	}
	return reUnescape.ReplaceAllStringFunc(s, func(m string) string {
		tag := strings.ToLower(m[2 : len(m)-1])
		c, ok := escapeLiterals[tag]
		if !ok {
			panic("generator: unknown escape placeholder " + m)
		}
		return c
	})
}
