package generator

import (
	"regexp"
	"strings"
)

// Marker-syntax matchers. All are fixed expressions compiled once at
// package init and shared read-only across every expansion call.
//
// Character classes are Unicode-aware: agreement suffixes routinely carry
// accented letters ("sorci·er·ère"), which Go's ASCII-only \w would miss.
// Segment classes additionally admit `~<>` so escape placeholder tokens
// survive inside agreement segments.
const (
	symClass = `[\p{L}\p{N}_]`
	segClass = `[\p{L}\p{N}_~<>]`
)

var (
	reEscape   = regexp.MustCompile(`~(.)`)
	reUnescape = regexp.MustCompile(`~<(\w+)>`)

	// trailing [dep] suffix on a registered symbol name; the leading
	// group is greedy, so only the last bracket pair is the dependency
	reDependency = regexp.MustCompile(`(.*)\[(` + symClass + `*)\]`)

	reReinstantiate = regexp.MustCompile(`\{\{(` + symClass + `*)\}\}`)
	reInstantiate   = regexp.MustCompile(`\{(` + symClass + `*)\}`)

	reGenderMarker = regexp.MustCompile(`(?i)\[([mfn])\]`)

	reSlashes = regexp.MustCompile(
		`(` + segClass + `*)/(` + segClass + `*)(?:/(` + segClass + `*))?(?:\[(` + symClass + `+)\])?`)
	reDots = regexp.MustCompile(
		`(` + segClass + `+)·(` + segClass + `*)(?:·(` + segClass + `*))?(?:·(` + segClass + `*))?(?:\[(` + segClass + `+)\])?`)
)

// replaceAllSubmatchFunc rewrites every match of re in s through repl,
// passing the submatch texts and a per-group presence flag (an optional
// group that matched the empty string is present but empty). The first
// error from repl aborts the whole rewrite.
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, repl func(groups []string, present []bool) (string, error)) (string, error) {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return s, nil
	}

	n := re.NumSubexp()
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(s[last:loc[0]])

		groups := make([]string, n+1)
		present := make([]bool, n+1)
		for i := 0; i <= n; i++ {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
				present[i] = true
			}
		}

		out, err := repl(groups, present)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String(), nil
}
