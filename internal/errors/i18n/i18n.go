// Package i18n provides localized catalogs for domain error messages.
package i18n

import (
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code mirrors the error code strings from internal/errors.
// Duplicated as plain strings to avoid an import cycle.
type Code = string

// Catalog stores the user-facing messages for one locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Locale returns the catalog's locale identifier.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for a code, interpolating metadata values
// through text/template ({{.Symbol}} style placeholders). Unknown codes
// and template failures fall back to the raw code string.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return code
	}
	if len(metadata) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}

	tmpl, err := template.New("msg").Parse(msg)
	if err != nil {
		return code
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return code
	}
	return b.String()
}

var catalogs = map[string]*Catalog{
	"en-US": enUSCatalog,
	"fr-FR": frFRCatalog,
}

var supported = []language.Tag{
	language.AmericanEnglish, // en-US: default
	language.French,          // fr-FR
}

var matcher = language.NewMatcher(supported)

// GetCatalog returns the best catalog for a BCP 47 locale string,
// falling back to en-US for unknown or malformed locales.
func GetCatalog(locale string) *Catalog {
	_, index := language.MatchStrings(matcher, locale)
	switch supported[index] {
	case language.French:
		return catalogs["fr-FR"]
	default:
		return catalogs["en-US"]
	}
}
