// Package grammar loads serialized symbol tables into a generator.
//
// The interchange format is a JSON object whose keys are symbol names,
// optionally suffixed with a bracketed gender dependency ("job[hero]"),
// and whose values are arrays of candidate variant strings.
package grammar

import (
	"context"
	"encoding/json"
	"os"

	apperrors "github.com/louisbranch/telltale/internal/errors"
	"github.com/louisbranch/telltale/internal/generator"
	grammarsqlite "github.com/louisbranch/telltale/internal/grammar/sqlite"
)

// Decode parses a serialized grammar document. A structural mismatch
// rejects the whole document.
func Decode(data []byte) (map[string][]string, error) {
	var table map[string][]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeGrammarMalformedInput, "decode grammar JSON", err)
	}
	return table, nil
}

// Encode serializes a grammar table to its interchange form.
func Encode(table map[string][]string) ([]byte, error) {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeGrammarMalformedInput, "encode grammar JSON", err)
	}
	return data, nil
}

// LoadBytes registers a serialized grammar document into gen.
func LoadBytes(gen *generator.Generator, data []byte) error {
	table, err := Decode(data)
	if err != nil {
		return err
	}
	return gen.AddMap(table)
}

// LoadFile registers a grammar file into gen.
func LoadFile(gen *generator.Generator, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeGrammarMalformedInput, "read grammar file "+path, err)
	}
	return LoadBytes(gen, data)
}

// LoadStore registers every symbol persisted in a grammar store into gen.
func LoadStore(ctx context.Context, gen *generator.Generator, store *grammarsqlite.Store) error {
	symbols, err := store.ListSymbols(ctx)
	if err != nil {
		return err
	}
	for _, sym := range symbols {
		if err := gen.Add(sym.Name, sym.Variants); err != nil {
			return err
		}
	}
	return nil
}

// BuildGenerator assembles a generator from an optional grammar file and an
// optional store, in that order (store entries overwrite file entries).
// The returned close function releases the store, if one was opened.
func BuildGenerator(ctx context.Context, grammarPath, storePath string) (*generator.Generator, func() error, error) {
	gen := generator.New()
	closeFn := func() error { return nil }

	if grammarPath != "" {
		if err := LoadFile(gen, grammarPath); err != nil {
			return nil, nil, err
		}
	}

	if storePath != "" {
		store, err := grammarsqlite.Open(storePath)
		if err != nil {
			return nil, nil, err
		}
		if err := LoadStore(ctx, gen, store); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		closeFn = store.Close
	}

	return gen, closeFn, nil
}
