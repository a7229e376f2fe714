package generator

import (
	"maps"
	"math/rand"
	"strings"

	apperrors "github.com/louisbranch/telltale/internal/errors"
)

// maxDepth bounds nested {{symbol}} reinstantiation. Reinstantiation runs
// with a fresh recursion guard, so a rule whose variant reinstantiates
// itself would otherwise recurse without bound.
const maxDepth = 64

// resolver owns the mutable state of one top-level expansion call: the
// memoized environment, the recursion guard, and the random source. The
// symbol table itself is only read.
type resolver struct {
	gen   *Generator
	env   map[string]resolvedEntry
	guard map[string]struct{}
	rng   *rand.Rand
	depth int
}

func (g *Generator) newResolver(rng *rand.Rand) *resolver {
	return &resolver{
		gen:   g,
		env:   maps.Clone(g.presets),
		guard: make(map[string]struct{}),
		rng:   rng,
	}
}

// instantiate resolves one symbol against the shared environment. Repeated
// references within one call reuse the first resolution; only the
// capitalization is recomputed from the use-site spelling.
func (r *resolver) instantiate(symbol string) (string, error) {
	name := strings.ToLower(symbol)

	if entry, ok := r.env[name]; ok {
		return capitalize(symbol, entry.content), nil
	}

	if _, ok := r.guard[name]; ok {
		return "", apperrors.WithMetadata(
			apperrors.CodeGrammarCyclicDependency,
			"cyclic dependency: "+symbol+" depends on itself",
			map[string]string{"Symbol": symbol},
		)
	}
	r.guard[name] = struct{}{}

	rl, ok := r.gen.rules[name]
	if !ok {
		return "", apperrors.WithMetadata(
			apperrors.CodeGrammarUnknownSymbol,
			"unknown symbol "+symbol,
			map[string]string{"Symbol": symbol},
		)
	}

	entry, err := r.replaceContent(rl)
	if err != nil {
		return "", err
	}

	r.env[name] = entry
	delete(r.guard, name)

	return capitalize(symbol, entry.content), nil
}

// reinstantiate resolves a symbol independently of the enclosing call: it
// sees a copy of everything resolved so far, but its picks are discarded
// afterward and its recursion guard starts fresh.
func (r *resolver) reinstantiate(symbol string) (string, error) {
	if r.depth >= maxDepth {
		return "", apperrors.WithMetadata(
			apperrors.CodeGrammarDepthExceeded,
			"expansion of "+symbol+" exceeded depth limit",
			map[string]string{"Symbol": symbol},
		)
	}
	sub := &resolver{
		gen:   r.gen,
		env:   maps.Clone(r.env),
		guard: make(map[string]struct{}),
		rng:   r.rng,
		depth: r.depth + 1,
	}
	return sub.instantiate(symbol)
}

// genderOf resolves the gender of a symbol, instantiating it first if it
// has not been resolved in this call.
func (r *resolver) genderOf(symbol string) (Gender, error) {
	name := strings.ToLower(symbol)

	if _, ok := r.env[name]; !ok {
		if _, err := r.instantiate(name); err != nil {
			return GenderNeutral, err
		}
	}
	entry, ok := r.env[name]
	if !ok {
		return GenderNeutral, apperrors.WithMetadata(
			apperrors.CodeGrammarMissingGenderSource,
			"symbol "+symbol+" does not resolve to a gender",
			map[string]string{"Symbol": symbol},
		)
	}
	return entry.gender, nil
}

// replaceContent turns one rule into resolved content. Pass order matters:
// each pass consumes the previous pass's output.
func (r *resolver) replaceContent(rl rule) (resolvedEntry, error) {
	// Pick a variant. An empty rule yields the empty string.
	var s string
	if len(rl.variants) > 0 {
		s = rl.variants[r.rng.Intn(len(rl.variants))]
	}

	// Extract the gender marker, at most one per variant.
	gender := GenderNeutral
	marks := reGenderMarker.FindAllStringSubmatch(s, -1)
	if len(marks) > 1 {
		return resolvedEntry{}, apperrors.WithMetadata(
			apperrors.CodeGrammarMultipleGenderMarkers,
			"multiple gender markers in "+s,
			map[string]string{"Variant": s},
		)
	}
	if len(marks) == 1 {
		switch strings.ToLower(marks[0][1]) {
		case "m":
			gender = GenderMale
		case "f":
			gender = GenderFemale
		case "n":
			gender = GenderNeutral
		}
	}
	s = reGenderMarker.ReplaceAllString(s, "")

	// {{symbol}}: independent expansions, discarded environments.
	s, err := replaceAllSubmatchFunc(reReinstantiate, s, func(groups []string, _ []bool) (string, error) {
		return r.reinstantiate(groups[1])
	})
	if err != nil {
		return resolvedEntry{}, err
	}

	// {symbol}: memoized expansions against the shared environment.
	s, err = replaceAllSubmatchFunc(reInstantiate, s, func(groups []string, _ []bool) (string, error) {
		return r.instantiate(groups[1])
	})
	if err != nil {
		return resolvedEntry{}, err
	}

	// The declared dependency's gender governs agreement markup that has
	// no explicit override of its own.
	genderAdapt := GenderNeutral
	if rl.hasDependency {
		genderAdapt, err = r.genderOf(rl.dependency)
		if err != nil {
			return resolvedEntry{}, err
		}
	}

	// Dot agreement: root·a[·b][·c][[symbol]].
	s, err = replaceAllSubmatchFunc(reDots, s, func(groups []string, present []bool) (string, error) {
		segments := 2
		if present[3] {
			segments++
		}
		if present[4] {
			segments++
		}

		g := genderAdapt
		if present[5] {
			var err error
			g, err = r.genderOf(groups[5])
			if err != nil {
				return "", err
			}
		}

		root, a, b, c := groups[1], groups[2], groups[3], groups[4]
		switch g {
		case GenderMale:
			switch segments {
			case 2:
				return root, nil
			case 3:
				return root + a, nil
			case 4:
				return root + a + c, nil
			}
		case GenderFemale:
			switch segments {
			case 2:
				return root + a, nil
			case 3:
				return root + b, nil
			case 4:
				return root + b + c, nil
			}
		case GenderNeutral:
			switch segments {
			case 2:
				return root + "/" + root + a, nil
			case 3:
				return root + a + "/" + root + b, nil
			case 4:
				return root + a + c + "/" + root + b + c, nil
			}
		}
		panic("generator: dot agreement captured an impossible segment count")
	})
	if err != nil {
		return resolvedEntry{}, err
	}

	// Slash agreement: male/female[/neutral][[symbol]].
	s, err = replaceAllSubmatchFunc(reSlashes, s, func(groups []string, present []bool) (string, error) {
		g := genderAdapt
		if present[4] {
			var err error
			g, err = r.genderOf(groups[4])
			if err != nil {
				return "", err
			}
		}

		switch g {
		case GenderMale:
			return groups[1], nil
		case GenderFemale:
			return groups[2], nil
		default:
			if present[3] {
				return groups[3], nil
			}
			return groups[1] + "/" + groups[2], nil
		}
	})
	if err != nil {
		return resolvedEntry{}, err
	}

	return resolvedEntry{content: s, gender: gender}, nil
}
