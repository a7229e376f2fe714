// Package generator implements a grammar-driven text expansion engine for
// procedural narrative content.
//
// A Generator maps symbols to replacement rules. Each rule holds candidate
// variants; instantiating a symbol picks a variant at random, expands
// nested {symbol} and {{symbol}} references, and resolves grammatical
// gender agreement so the output reads naturally. The same grammar can be
// expanded non-deterministically or from a fixed seed for reproducible
// content.
//
// Variant text understands a small fixed marker syntax:
//
//	{weapon}        expand weapon, memoized for the whole call
//	{{weapon}}      expand weapon independently, fresh random pick
//	[m] [f] [n]     set the gender of the enclosing symbol
//	un·e            dot agreement: root plus gendered suffixes
//	he/she/they     slash agreement: gendered alternatives
//	...[hero]       agreement governed by hero's resolved gender
//	~x              literal syntax character (~ , [ ] { } / ·)
package generator

import (
	"encoding/json"
	"math/rand"
	"slices"
	"strings"

	apperrors "github.com/louisbranch/telltale/internal/errors"
	"github.com/louisbranch/telltale/internal/platform/random"
)

// rule is one symbol's replacement grammar.
type rule struct {
	// dependency names the symbol whose resolved gender governs
	// agreement markup inside this rule's variants. Resolved by name at
	// expansion time; the symbol may be registered later or never.
	dependency    string
	hasDependency bool
	variants      []string
}

// resolvedEntry is one symbol's final text and gender within a single
// top-level expansion call. Entries are never mutated once stored.
type resolvedEntry struct {
	content string
	gender  Gender
}

// Binding pairs a symbol with its literal replacement value in message
// mode. Values may use the full marker syntax but offer no random choice.
type Binding struct {
	Symbol string
	Value  string
}

// Generator holds a symbol table and pre-set genders. Registration
// (Add/AddMap/AddJSON/SetGender) must not race with in-flight expansions;
// once built, a Generator supports concurrent expansion calls.
type Generator struct {
	rules   map[string]rule
	presets map[string]resolvedEntry
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{
		rules:   make(map[string]rule),
		presets: make(map[string]resolvedEntry),
	}
}

// Add registers a replacement rule. The symbol is lower-cased, escaped,
// and may carry a trailing bracketed gender dependency ("job[hero]").
// Re-adding a symbol overwrites its rule.
func (g *Generator) Add(symbol string, variants []string) error {
	name := escape(strings.ToLower(symbol))

	escaped := make([]string, len(variants))
	for i, v := range variants {
		escaped[i] = escape(v)
	}

	r := rule{variants: escaped}
	if m := reDependency.FindStringSubmatch(name); m != nil {
		name = m[1]
		r.dependency = m[2]
		r.hasDependency = true
	}

	g.rules[name] = r
	return nil
}

// AddMap registers every entry of a symbol table, equivalent to calling
// Add once per pair.
func (g *Generator) AddMap(table map[string][]string) error {
	for symbol, variants := range table {
		if err := g.Add(symbol, variants); err != nil {
			return err
		}
	}
	return nil
}

// AddJSON registers a symbol table from its JSON serialization: an object
// whose keys are symbol names and whose values are arrays of variants.
// A structural mismatch rejects the whole document; nothing is registered.
func (g *Generator) AddJSON(data []byte) error {
	var table map[string][]string
	if err := json.Unmarshal(data, &table); err != nil {
		return apperrors.Wrap(apperrors.CodeGrammarMalformedInput, "decode grammar JSON", err)
	}
	return g.AddMap(table)
}

// SetGender seeds a pre-resolved entry carrying only a gender, for symbols
// whose gender is decided outside the grammar (a player-chosen pronoun,
// for instance) rather than inferred from a variant marker.
func (g *Generator) SetGender(symbol string, gender Gender) {
	g.presets[strings.ToLower(symbol)] = resolvedEntry{gender: gender}
}

// Symbols returns the sorted canonical names of all registered rules.
func (g *Generator) Symbols() []string {
	names := make([]string, 0, len(g.rules))
	for name := range g.rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Instantiate expands a symbol using an entropy-derived seed.
func (g *Generator) Instantiate(symbol string) (string, error) {
	seed, err := random.NewSeed()
	if err != nil {
		return "", err
	}
	return g.InstantiateWithSeed(symbol, seed)
}

// InstantiateWithSeed expands a symbol deterministically: the same
// grammar, symbol, and seed always produce the same output.
func (g *Generator) InstantiateWithSeed(symbol string, seed int64) (string, error) {
	r := g.newResolver(rand.New(rand.NewSource(seed)))
	out, err := r.instantiate(symbol)
	if err != nil {
		return "", err
	}
	return unescape(out), nil
}

// Msg expands an ad hoc template without registering it. Bindings are
// applied in order as single-variant rules and may use the full marker
// syntax, so gender markers and agreement work across template and
// bindings.
func (g *Generator) Msg(template string, bindings []Binding) (string, error) {
	seed, err := random.NewSeed()
	if err != nil {
		return "", err
	}
	return g.MsgWithSeed(template, bindings, seed)
}

// MsgWithSeed is Msg with a deterministic random source.
func (g *Generator) MsgWithSeed(template string, bindings []Binding, seed int64) (string, error) {
	r := g.newResolver(rand.New(rand.NewSource(seed)))

	for _, b := range bindings {
		name := escape(strings.ToLower(b.Symbol))
		entry, err := r.replaceContent(rule{variants: []string{escape(b.Value)}})
		if err != nil {
			return "", err
		}
		r.env[name] = entry
	}

	entry, err := r.replaceContent(rule{variants: []string{escape(template)}})
	if err != nil {
		return "", err
	}
	return unescape(entry.content), nil
}
