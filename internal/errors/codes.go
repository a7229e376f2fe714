// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Grammar authoring/expansion errors
	CodeGrammarUnknownSymbol         Code = "GRAMMAR_UNKNOWN_SYMBOL"
	CodeGrammarCyclicDependency      Code = "GRAMMAR_CYCLIC_DEPENDENCY"
	CodeGrammarMultipleGenderMarkers Code = "GRAMMAR_MULTIPLE_GENDER_MARKERS"
	CodeGrammarMissingGenderSource   Code = "GRAMMAR_MISSING_GENDER_SOURCE"
	CodeGrammarMalformedInput        Code = "GRAMMAR_MALFORMED_INPUT"
	CodeGrammarDepthExceeded         Code = "GRAMMAR_DEPTH_EXCEEDED"
	CodeGrammarInvalidGender         Code = "GRAMMAR_INVALID_GENDER"

	// Storage errors
	CodeStorageNotFound Code = "STORAGE_NOT_FOUND"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"
)
