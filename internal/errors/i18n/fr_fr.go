package i18n

var frFRCatalog = &Catalog{
	locale: "fr-FR",
	messages: map[Code]string{
		CodeUnknown: "Une erreur inattendue est survenue",

		CodeGrammarUnknownSymbol:         "Le symbole {{.Symbol}} n'est pas défini dans la grammaire",
		CodeGrammarCyclicDependency:      "Le symbole {{.Symbol}} dépend de lui-même",
		CodeGrammarMultipleGenderMarkers: "La variante {{.Variant}} déclare plusieurs marqueurs de genre",
		CodeGrammarMissingGenderSource:   "Le symbole {{.Symbol}} ne fournit pas de genre",
		CodeGrammarMalformedInput:        "Le document de grammaire est mal formé",
		CodeGrammarDepthExceeded:         "L'expansion de {{.Symbol}} dépasse la limite d'imbrication",
		CodeGrammarInvalidGender:         "{{.Gender}} n'est pas un genre valide",

		CodeStorageNotFound: "Le symbole {{.Symbol}} n'est pas enregistré",

		CodeSeedUnavailable: "Impossible d'obtenir une graine aléatoire",
	},
}
