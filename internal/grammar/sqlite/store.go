// Package sqlite provides SQLite-backed persistence for grammar symbol
// tables. Symbol names are stored exactly as authored, including any
// bracketed gender-dependency suffix; parsing stays in the engine.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/telltale/internal/errors"
	"github.com/louisbranch/telltale/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Symbol is one persisted grammar entry.
type Symbol struct {
	Name     string
	Variants []string
}

// Store provides SQLite-backed persistence for grammar tables.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a grammar SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrationFS, "migrations"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSymbol upserts one symbol and its ordered variants.
func (s *Store) PutSymbol(ctx context.Context, name string, variants []string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("symbol name is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put symbol: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO symbols (name, updated_at) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`,
		name, time.Now().UTC().UnixMilli(),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("upsert symbol %s: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM variants WHERE symbol = ?`, name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear variants for %s: %w", name, err)
	}

	for i, content := range variants {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO variants (symbol, position, content) VALUES (?, ?, ?)`,
			name, i, content,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert variant %d for %s: %w", i, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put symbol: %w", err)
	}
	return nil
}

// GetSymbol loads one symbol's variants by its authored name.
func (s *Store) GetSymbol(ctx context.Context, name string) ([]string, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var found int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM symbols WHERE name = ?`, name).Scan(&found)
	if err == sql.ErrNoRows {
		return nil, apperrors.WithMetadata(apperrors.CodeStorageNotFound,
			"symbol "+name+" is not stored", map[string]string{"Symbol": name})
	}
	if err != nil {
		return nil, fmt.Errorf("get symbol %s: %w", name, err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT content FROM variants WHERE symbol = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("get variants for %s: %w", name, err)
	}
	defer rows.Close()

	var variants []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan variant for %s: %w", name, err)
		}
		variants = append(variants, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants for %s: %w", name, err)
	}
	return variants, nil
}

// ListSymbols loads every stored symbol with its variants, ordered by name.
func (s *Store) ListSymbols(ctx context.Context) ([]Symbol, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT s.name, v.content
		FROM symbols s
		LEFT JOIN variants v ON v.symbol = s.name
		ORDER BY s.name, v.position`)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}
	defer rows.Close()

	var symbols []Symbol
	for rows.Next() {
		var name string
		var content sql.NullString
		if err := rows.Scan(&name, &content); err != nil {
			return nil, fmt.Errorf("scan symbol row: %w", err)
		}
		if len(symbols) == 0 || symbols[len(symbols)-1].Name != name {
			symbols = append(symbols, Symbol{Name: name})
		}
		if content.Valid {
			last := &symbols[len(symbols)-1]
			last.Variants = append(last.Variants, content.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbols: %w", err)
	}
	return symbols, nil
}

// DeleteSymbol removes a symbol and its variants.
func (s *Store) DeleteSymbol(ctx context.Context, name string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete symbol: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM variants WHERE symbol = ?`, name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete variants for %s: %w", name, err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM symbols WHERE name = ?`, name)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete symbol %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete symbol %s: %w", name, err)
	}
	if affected == 0 {
		_ = tx.Rollback()
		return apperrors.WithMetadata(apperrors.CodeStorageNotFound,
			"symbol "+name+" is not stored", map[string]string{"Symbol": name})
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete symbol: %w", err)
	}
	return nil
}

// Import upserts every entry of a grammar table in one call.
func (s *Store) Import(ctx context.Context, table map[string][]string) error {
	for name, variants := range table {
		if err := s.PutSymbol(ctx, name, variants); err != nil {
			return err
		}
	}
	return nil
}
