package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	apperrors "github.com/louisbranch/telltale/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "grammar.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty storage path")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	variants := []string{"John[m]", "Olivia[f]", "Gail[n]"}
	if err := store.PutSymbol(ctx, "hero", variants); err != nil {
		t.Fatalf("PutSymbol() error: %v", err)
	}

	got, err := store.GetSymbol(ctx, "hero")
	if err != nil {
		t.Fatalf("GetSymbol() error: %v", err)
	}
	if len(got) != len(variants) {
		t.Fatalf("got %v, want %v", got, variants)
	}
	for i := range variants {
		if got[i] != variants[i] {
			t.Errorf("variant %d: got %q, want %q", i, got[i], variants[i])
		}
	}
}

func TestPutSymbolOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutSymbol(ctx, "hero", []string{"old", "stale"}); err != nil {
		t.Fatalf("PutSymbol() error: %v", err)
	}
	if err := store.PutSymbol(ctx, "hero", []string{"new"}); err != nil {
		t.Fatalf("PutSymbol() overwrite error: %v", err)
	}

	got, err := store.GetSymbol(ctx, "hero")
	if err != nil {
		t.Fatalf("GetSymbol() error: %v", err)
	}
	if len(got) != 1 || got[0] != "new" {
		t.Errorf("got %v, want [new]", got)
	}
}

func TestGetSymbolNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetSymbol(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for missing symbol")
	}
	if !apperrors.IsCode(err, apperrors.CodeStorageNotFound) {
		t.Errorf("expected storage not found code, got %v", err)
	}
}

func TestListSymbolsOrdered(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutSymbol(ctx, "zeta", []string{"z1", "z2"}); err != nil {
		t.Fatalf("PutSymbol() error: %v", err)
	}
	if err := store.PutSymbol(ctx, "alpha[hero]", []string{"a1"}); err != nil {
		t.Fatalf("PutSymbol() error: %v", err)
	}
	if err := store.PutSymbol(ctx, "empty", nil); err != nil {
		t.Fatalf("PutSymbol() error: %v", err)
	}

	symbols, err := store.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("ListSymbols() error: %v", err)
	}
	if len(symbols) != 3 {
		t.Fatalf("got %d symbols, want 3", len(symbols))
	}
	if symbols[0].Name != "alpha[hero]" || symbols[1].Name != "empty" || symbols[2].Name != "zeta" {
		t.Errorf("unexpected order: %v", symbols)
	}
	if len(symbols[1].Variants) != 0 {
		t.Errorf("expected no variants for empty symbol, got %v", symbols[1].Variants)
	}
	if len(symbols[2].Variants) != 2 || symbols[2].Variants[0] != "z1" {
		t.Errorf("unexpected variants: %v", symbols[2].Variants)
	}
}

func TestDeleteSymbol(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutSymbol(ctx, "hero", []string{"John"}); err != nil {
		t.Fatalf("PutSymbol() error: %v", err)
	}
	if err := store.DeleteSymbol(ctx, "hero"); err != nil {
		t.Fatalf("DeleteSymbol() error: %v", err)
	}

	if _, err := store.GetSymbol(ctx, "hero"); !apperrors.IsCode(err, apperrors.CodeStorageNotFound) {
		t.Errorf("expected symbol gone, got %v", err)
	}
	if err := store.DeleteSymbol(ctx, "hero"); !apperrors.IsCode(err, apperrors.CodeStorageNotFound) {
		t.Errorf("expected not found for second delete, got %v", err)
	}
}

func TestImport(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	table := map[string][]string{
		"hero":      {"John[m]"},
		"job[hero]": {"sorci·er·ère", "barbare"},
	}
	if err := store.Import(ctx, table); err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	symbols, err := store.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("ListSymbols() error: %v", err)
	}
	if len(symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(symbols))
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grammar.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.PutSymbol(ctx, "hero", []string{"John"}); err != nil {
		t.Fatalf("PutSymbol() error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.GetSymbol(ctx, "hero")
	if err != nil {
		t.Fatalf("GetSymbol() after reopen error: %v", err)
	}
	if len(got) != 1 || got[0] != "John" {
		t.Errorf("got %v, want [John]", got)
	}
}
