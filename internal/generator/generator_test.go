package generator

import (
	"strings"
	"testing"

	apperrors "github.com/louisbranch/telltale/internal/errors"
)

func mustAdd(t *testing.T, gen *Generator, symbol string, variants []string) {
	t.Helper()
	if err := gen.Add(symbol, variants); err != nil {
		t.Fatalf("Add(%q) error: %v", symbol, err)
	}
}

func mustInstantiate(t *testing.T, gen *Generator, symbol string) string {
	t.Helper()
	out, err := gen.Instantiate(symbol)
	if err != nil {
		t.Fatalf("Instantiate(%q) error: %v", symbol, err)
	}
	return out
}

func TestAddJSON(t *testing.T) {
	gen := New()
	err := gen.AddJSON([]byte(`{"Test": ["foo", "bar"]}`))
	if err != nil {
		t.Fatalf("AddJSON() error: %v", err)
	}
	out := mustInstantiate(t, gen, "test")
	if out != "foo" && out != "bar" {
		t.Errorf("unexpected expansion %q", out)
	}
}

func TestAddJSONMalformed(t *testing.T) {
	gen := New()
	err := gen.AddJSON([]byte(`{"Test": "not an array"}`))
	if err == nil {
		t.Fatal("expected error for malformed grammar JSON")
	}
	if !apperrors.IsCode(err, apperrors.CodeGrammarMalformedInput) {
		t.Errorf("expected malformed input code, got %v", err)
	}
}

func TestMissingSymbol(t *testing.T) {
	gen := New()
	_, err := gen.Instantiate("foo")
	if err == nil {
		t.Fatal("expected error for missing symbol")
	}
	if !apperrors.IsCode(err, apperrors.CodeGrammarUnknownSymbol) {
		t.Errorf("expected unknown symbol code, got %v", err)
	}
}

func TestReplacementSingle(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "foo", []string{"hello"})
	mustAdd(t, gen, "bar", []string{"{foo} world"})
	if out := mustInstantiate(t, gen, "bar"); out != "hello world" {
		t.Errorf("got %q, want %q", out, "hello world")
	}
}

func TestReplacementNested(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "foo", []string{"hello"})
	mustAdd(t, gen, "bar", []string{"world"})
	mustAdd(t, gen, "baz", []string{"{foo} {bar}"})
	if out := mustInstantiate(t, gen, "baz"); out != "hello world" {
		t.Errorf("got %q, want %q", out, "hello world")
	}
}

func TestGenderFromPreset(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "foo[plop]", []string{"He/She is happy"})

	gen.SetGender("plop", GenderMale)
	if out := mustInstantiate(t, gen, "foo"); out != "He is happy" {
		t.Errorf("got %q, want %q", out, "He is happy")
	}

	gen.SetGender("plop", GenderFemale)
	if out := mustInstantiate(t, gen, "foo"); out != "She is happy" {
		t.Errorf("got %q, want %q", out, "She is happy")
	}
}

func TestGenderFromDependency(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "plop", []string{"Joe[m]"})
	mustAdd(t, gen, "foo[plop]", []string{"He/She is happy"})
	if out := mustInstantiate(t, gen, "foo"); out != "He is happy" {
		t.Errorf("got %q, want %q", out, "He is happy")
	}
}

func TestGenderFromInlineOverride(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "plop", []string{"Joe[m]"})
	mustAdd(t, gen, "foo", []string{"He/She[plop] is happy"})
	if out := mustInstantiate(t, gen, "foo"); out != "He is happy" {
		t.Errorf("got %q, want %q", out, "He is happy")
	}
}

func TestGenderSlashWithEscapedSpace(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "arme", []string{"batte[f]"})
	mustAdd(t, gen, "foo", []string{"Un homme au/à~ la[arme] {arme} facile"})
	if out := mustInstantiate(t, gen, "foo"); out != "Un homme à la batte facile" {
		t.Errorf("got %q, want %q", out, "Un homme à la batte facile")
	}
}

func TestSlashNeutralForms(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "they", []string{"Sam[n]"})
	mustAdd(t, gen, "two[they]", []string{"he/she is here"})
	mustAdd(t, gen, "three[they]", []string{"he/she/they is here"})

	if out := mustInstantiate(t, gen, "two"); out != "he/she is here" {
		t.Errorf("got %q, want %q", out, "he/she is here")
	}
	if out := mustInstantiate(t, gen, "three"); out != "they is here" {
		t.Errorf("got %q, want %q", out, "they is here")
	}
}

func TestDotAgreementArities(t *testing.T) {
	tests := []struct {
		name    string
		gender  string
		variant string
		want    string
	}{
		{"two segments male", "Joe[m]", "sorci·er·ère", "sorcier"},
		{"two segments female", "Ann[f]", "sorci·er·ère", "sorcière"},
		{"two segments neutral", "Sam[n]", "sorci·er·ère", "sorcier/sorcière"},
		{"one suffix male", "Joe[m]", "un·e", "un"},
		{"one suffix female", "Ann[f]", "un·e", "une"},
		{"one suffix neutral", "Sam[n]", "un·e", "un/une"},
		{"shared tail male", "Joe[m]", "heureu·x·se·ment", "heureuxment"},
		{"shared tail female", "Ann[f]", "heureu·x·se·ment", "heureusement"},
		{"shared tail neutral", "Sam[n]", "heureu·x·se·ment", "heureuxment/heureusement"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := New()
			mustAdd(t, gen, "who", []string{tc.gender})
			mustAdd(t, gen, "foo[who]", []string{tc.variant})
			if out := mustInstantiate(t, gen, "foo"); out != tc.want {
				t.Errorf("got %q, want %q", out, tc.want)
			}
		})
	}
}

func TestCyclicDependency(t *testing.T) {
	gen := New()
	err := gen.AddJSON([]byte(`{"a[b]": ["Foo"], "b[a]": ["Bar"]}`))
	if err != nil {
		t.Fatalf("AddJSON() error: %v", err)
	}
	_, err = gen.Instantiate("a")
	if err == nil {
		t.Fatal("expected error for cyclic dependency")
	}
	if !apperrors.IsCode(err, apperrors.CodeGrammarCyclicDependency) {
		t.Errorf("expected cyclic dependency code, got %v", err)
	}
}

func TestUnknownDependency(t *testing.T) {
	gen := New()
	err := gen.AddJSON([]byte(`{"a[b]": ["Foo"], "b[c]": ["Bar"]}`))
	if err != nil {
		t.Fatalf("AddJSON() error: %v", err)
	}
	_, err = gen.Instantiate("a")
	if err == nil {
		t.Fatal("expected error for unknown dependency")
	}
	if !apperrors.IsCode(err, apperrors.CodeGrammarUnknownSymbol) {
		t.Errorf("expected unknown symbol code, got %v", err)
	}
}

func TestMultipleGenderMarkers(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "foo", []string{"Joe[m][f]"})
	_, err := gen.Instantiate("foo")
	if err == nil {
		t.Fatal("expected error for multiple gender markers")
	}
	if !apperrors.IsCode(err, apperrors.CodeGrammarMultipleGenderMarkers) {
		t.Errorf("expected multiple gender markers code, got %v", err)
	}
}

func TestEscapedMarkersSurviveExpansion(t *testing.T) {
	gen := New()
	err := gen.AddJSON([]byte(`{
		"object": ["~[lame~][f]"],
		"main": ["~{Vous~} avez un·e[object] {object}"]
	}`))
	if err != nil {
		t.Fatalf("AddJSON() error: %v", err)
	}
	if out := mustInstantiate(t, gen, "main"); out != "{Vous} avez une [lame]" {
		t.Errorf("got %q, want %q", out, "{Vous} avez une [lame]")
	}
}

func TestEmptyRuleYieldsEmptyString(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "foo", nil)
	if out := mustInstantiate(t, gen, "foo"); out != "" {
		t.Errorf("got %q, want empty string", out)
	}
}

func TestMemoizedReferencesAgree(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "hero", []string{"John", "Olivia", "Gail", "Tom", "Judi"})
	mustAdd(t, gen, "twice", []string{"{hero} and {hero}"})
	for seed := int64(0); seed < 20; seed++ {
		out, err := gen.InstantiateWithSeed("twice", seed)
		if err != nil {
			t.Fatalf("InstantiateWithSeed() error: %v", err)
		}
		parts := strings.Split(out, " and ")
		if len(parts) != 2 || parts[0] != parts[1] {
			t.Fatalf("seed %d: repeated reference diverged: %q", seed, out)
		}
	}
}

func TestReinstantiateIsIndependent(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "coin", []string{"heads", "tails"})
	mustAdd(t, gen, "flips", []string{"{{coin}} {{coin}} {{coin}} {{coin}} {{coin}} {{coin}} {{coin}} {{coin}}"})

	// With memoization every flip would repeat the first; independent
	// expansion makes both faces overwhelmingly likely across seeds.
	sawBoth := false
	for seed := int64(0); seed < 10 && !sawBoth; seed++ {
		out, err := gen.InstantiateWithSeed("flips", seed)
		if err != nil {
			t.Fatalf("InstantiateWithSeed() error: %v", err)
		}
		sawBoth = strings.Contains(out, "heads") && strings.Contains(out, "tails")
	}
	if !sawBoth {
		t.Error("independent expansions never produced both faces")
	}
}

func TestReinstantiateDepthLimit(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "loop", []string{"{{loop}}"})
	_, err := gen.Instantiate("loop")
	if err == nil {
		t.Fatal("expected error for unbounded reinstantiation")
	}
	if !apperrors.IsCode(err, apperrors.CodeGrammarDepthExceeded) {
		t.Errorf("expected depth exceeded code, got %v", err)
	}
}

func TestSeededDeterminism(t *testing.T) {
	gen := New()
	err := gen.AddJSON([]byte(`{
		"hero": ["John[m]", "Olivia[f]", "Gail[n]", "Tom[m]", "Judi[f]"],
		"job[hero]": ["sorci·er·ère", "guerri·er·ère", "voleu·r·se", "barbare", "archer/archère"],
		"arme": ["hache[f]", "épée[f]", "gourdin[m]", "arc[m]", "masse[f]"],
		"adjectif[arme]": ["tranchant·e", "imposant·e", "étincelant·e", "rouillé·e", "brutal·e"],
		"description": ["{hero}, un·e[hero] {job} avec un·e[arme] {arme} {adjectif}"],
		"main[hero]": ["Il/Elle/Iel s'appelle {hero}. {hero} est un·e {job}. Il/Elle/Iel a un·e[arme] {arme}. Ce·tte[arme]  {arme} est {adjectif}. Avec lui/elle se trouve {{description}} et {{description}}. {hero} les aime bien, c'est son crew."]
	}`))
	if err != nil {
		t.Fatalf("AddJSON() error: %v", err)
	}

	r1, err := gen.InstantiateWithSeed("main", 42)
	if err != nil {
		t.Fatalf("InstantiateWithSeed() error: %v", err)
	}
	r2, err := gen.InstantiateWithSeed("main", 42)
	if err != nil {
		t.Fatalf("InstantiateWithSeed() error: %v", err)
	}
	if r1 != r2 {
		t.Errorf("same seed diverged:\n%q\n%q", r1, r2)
	}
}

func TestCapitalizationFollowsUseSite(t *testing.T) {
	gen := New()
	err := gen.AddJSON([]byte(`{
		"dog": ["a good dog"],
		"foo": ["Zyma. {Dog}"],
		"bar": ["Zyma is {dog}"],
		"baz": ["Zyma is {DOG}"]
	}`))
	if err != nil {
		t.Fatalf("AddJSON() error: %v", err)
	}

	if out := mustInstantiate(t, gen, "foo"); out != "Zyma. A good dog" {
		t.Errorf("got %q, want %q", out, "Zyma. A good dog")
	}
	if out := mustInstantiate(t, gen, "bar"); out != "Zyma is a good dog" {
		t.Errorf("got %q, want %q", out, "Zyma is a good dog")
	}
	if out := mustInstantiate(t, gen, "baz"); out != "Zyma is A GOOD DOG" {
		t.Errorf("got %q, want %q", out, "Zyma is A GOOD DOG")
	}
}

func TestMsg(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "dog", []string{"a good dog"})

	out, err := gen.Msg("This is {DOG}", nil)
	if err != nil {
		t.Fatalf("Msg() error: %v", err)
	}
	if out != "This is A GOOD DOG" {
		t.Errorf("got %q, want %q", out, "This is A GOOD DOG")
	}

	out, err = gen.Msg("{doggo} is {DOG}, he/she[doggo] is so cute!",
		[]Binding{{Symbol: "doggo", Value: "Zyma[f]"}})
	if err != nil {
		t.Fatalf("Msg() error: %v", err)
	}
	if out != "Zyma is A GOOD DOG, she is so cute!" {
		t.Errorf("got %q, want %q", out, "Zyma is A GOOD DOG, she is so cute!")
	}
}

func TestMsgWithSeedDeterminism(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "mood", []string{"calm", "angry", "sleepy"})

	first, err := gen.MsgWithSeed("The guard looks {mood}.", nil, 7)
	if err != nil {
		t.Fatalf("MsgWithSeed() error: %v", err)
	}
	second, err := gen.MsgWithSeed("The guard looks {mood}.", nil, 7)
	if err != nil {
		t.Fatalf("MsgWithSeed() error: %v", err)
	}
	if first != second {
		t.Errorf("same seed diverged: %q vs %q", first, second)
	}
}

func TestSymbols(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "Zeta", []string{"z"})
	mustAdd(t, gen, "alpha[hero]", []string{"a"})
	mustAdd(t, gen, "mid", []string{"m"})

	got := gen.Symbols()
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAddOverwritesRule(t *testing.T) {
	gen := New()
	mustAdd(t, gen, "foo", []string{"old"})
	mustAdd(t, gen, "foo", []string{"new"})
	if out := mustInstantiate(t, gen, "foo"); out != "new" {
		t.Errorf("got %q, want %q", out, "new")
	}
}
