// Package telltale parses CLI flags and expands grammar symbols to stdout.
package telltale

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/louisbranch/telltale/internal/generator"
	"github.com/louisbranch/telltale/internal/grammar"
	grammarsqlite "github.com/louisbranch/telltale/internal/grammar/sqlite"
	"github.com/louisbranch/telltale/internal/platform/config"
)

// GenderAssignment pairs a symbol with an externally decided gender.
type GenderAssignment struct {
	Symbol string
	Gender generator.Gender
}

// Config holds CLI command configuration.
type Config struct {
	Grammar string `env:"TELLTALE_GRAMMAR"`
	Store   string `env:"TELLTALE_DB"`
	Locale  string `env:"TELLTALE_LOCALE" envDefault:"en-US"`

	Symbol   string
	Message  string
	Bindings []generator.Binding
	Genders  []GenderAssignment
	Seed     int64
	Count    int
	Import   string
}

// pairList collects repeated name=value flags in order.
type pairList struct {
	flagName string
	pairs    [][2]string
}

func (l *pairList) String() string {
	parts := make([]string, 0, len(l.pairs))
	for _, p := range l.pairs {
		parts = append(parts, p[0]+"="+p[1])
	}
	return strings.Join(parts, ",")
}

func (l *pairList) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	if !ok || name == "" {
		return fmt.Errorf("-%s expects name=value, got %q", l.flagName, value)
	}
	l.pairs = append(l.pairs, [2]string{name, val})
	return nil
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	binds := &pairList{flagName: "bind"}
	genders := &pairList{flagName: "gender"}

	fs.StringVar(&cfg.Grammar, "grammar", cfg.Grammar, "path to a grammar JSON file")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "path to a SQLite grammar store")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	fs.StringVar(&cfg.Symbol, "symbol", "", "symbol to expand")
	fs.StringVar(&cfg.Message, "message", "", "one-off template to expand instead of a symbol")
	fs.Var(binds, "bind", "symbol=value binding for -message (repeatable, applied in order)")
	fs.Var(genders, "gender", "symbol=gender assignment (repeatable)")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed for reproducibility (0 = random)")
	fs.IntVar(&cfg.Count, "count", 1, "number of expansions to produce")
	fs.StringVar(&cfg.Import, "import", "", "grammar JSON file to import into the store, then exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	for _, p := range binds.pairs {
		cfg.Bindings = append(cfg.Bindings, generator.Binding{Symbol: p[0], Value: p[1]})
	}
	for _, p := range genders.pairs {
		gender, err := generator.ParseGender(p[1])
		if err != nil {
			return Config{}, err
		}
		cfg.Genders = append(cfg.Genders, GenderAssignment{Symbol: p[0], Gender: gender})
	}
	return cfg, nil
}

// Run executes the CLI command, writing expansions to out one per line.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	if cfg.Import != "" {
		return runImport(ctx, cfg, out)
	}

	if cfg.Symbol == "" && cfg.Message == "" {
		return fmt.Errorf("either -symbol or -message is required")
	}

	gen, closeStore, err := grammar.BuildGenerator(ctx, cfg.Grammar, cfg.Store)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	for _, g := range cfg.Genders {
		gen.SetGender(g.Symbol, g.Gender)
	}

	if cfg.Message != "" {
		return runMessage(gen, cfg, out)
	}
	return runInstantiate(gen, cfg, out)
}

func runInstantiate(gen *generator.Generator, cfg Config, out io.Writer) error {
	count := cfg.Count
	if count <= 0 {
		count = 1
	}
	for i := 0; i < count; i++ {
		var text string
		var err error
		if cfg.Seed != 0 {
			text, err = gen.InstantiateWithSeed(cfg.Symbol, cfg.Seed+int64(i))
		} else {
			text, err = gen.Instantiate(cfg.Symbol)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
	}
	return nil
}

func runMessage(gen *generator.Generator, cfg Config, out io.Writer) error {
	var text string
	var err error
	if cfg.Seed != 0 {
		text, err = gen.MsgWithSeed(cfg.Message, cfg.Bindings, cfg.Seed)
	} else {
		text, err = gen.Msg(cfg.Message, cfg.Bindings)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}

func runImport(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.Store == "" {
		return fmt.Errorf("-import requires a store path")
	}

	data, err := os.ReadFile(cfg.Import)
	if err != nil {
		return fmt.Errorf("read grammar file %s: %w", cfg.Import, err)
	}
	table, err := grammar.Decode(data)
	if err != nil {
		return err
	}

	store, err := grammarsqlite.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Import(ctx, table); err != nil {
		return err
	}
	fmt.Fprintf(out, "imported %d symbols into %s\n", len(table), cfg.Store)
	return nil
}
