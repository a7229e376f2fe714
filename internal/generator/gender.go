package generator

import (
	"strings"

	apperrors "github.com/louisbranch/telltale/internal/errors"
)

// Gender is the grammatical gender attached to a resolved symbol.
type Gender int

const (
	// GenderNeutral is both an explicit category and the default when a
	// variant carries no gender marker.
	GenderNeutral Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderNeutral:
		return "neutral"
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// ParseGender maps an external gender name to a Gender. It accepts the
// single-letter marker forms and full names, case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return GenderMale, nil
	case "f", "female":
		return GenderFemale, nil
	case "n", "neutral":
		return GenderNeutral, nil
	default:
		return GenderNeutral, apperrors.WithMetadata(
			apperrors.CodeGrammarInvalidGender,
			"invalid gender "+s,
			map[string]string{"Gender": s},
		)
	}
}
