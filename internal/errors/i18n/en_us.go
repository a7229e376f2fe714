package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
const (
	CodeUnknown                      = "UNKNOWN"
	CodeGrammarUnknownSymbol         = "GRAMMAR_UNKNOWN_SYMBOL"
	CodeGrammarCyclicDependency      = "GRAMMAR_CYCLIC_DEPENDENCY"
	CodeGrammarMultipleGenderMarkers = "GRAMMAR_MULTIPLE_GENDER_MARKERS"
	CodeGrammarMissingGenderSource   = "GRAMMAR_MISSING_GENDER_SOURCE"
	CodeGrammarMalformedInput        = "GRAMMAR_MALFORMED_INPUT"
	CodeGrammarDepthExceeded         = "GRAMMAR_DEPTH_EXCEEDED"
	CodeGrammarInvalidGender         = "GRAMMAR_INVALID_GENDER"
	CodeStorageNotFound              = "STORAGE_NOT_FOUND"
	CodeSeedUnavailable              = "SEED_UNAVAILABLE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "An unexpected error occurred",

		CodeGrammarUnknownSymbol:         "Symbol {{.Symbol}} is not defined in the grammar",
		CodeGrammarCyclicDependency:      "Symbol {{.Symbol}} depends on itself",
		CodeGrammarMultipleGenderMarkers: "Variant {{.Variant}} declares more than one gender marker",
		CodeGrammarMissingGenderSource:   "Symbol {{.Symbol}} does not resolve to a gender",
		CodeGrammarMalformedInput:        "The grammar document is malformed",
		CodeGrammarDepthExceeded:         "Expansion of {{.Symbol}} exceeded the nesting limit",
		CodeGrammarInvalidGender:         "{{.Gender}} is not a valid gender",

		CodeStorageNotFound: "Symbol {{.Symbol}} is not stored",

		CodeSeedUnavailable: "Could not obtain a random seed",
	},
}
