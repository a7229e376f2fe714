package mcp

import (
	"context"
	"flag"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Errorf("expected default transport stdio, got %q", cfg.Transport)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TELLTALE_GRAMMAR", "env.json")
	t.Setenv("TELLTALE_DB", "env.db")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-grammar", "flag.json"})
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.Grammar != "flag.json" {
		t.Errorf("expected flag to override env, got %q", cfg.Grammar)
	}
	if cfg.Store != "env.db" {
		t.Errorf("expected env store, got %q", cfg.Store)
	}
}

func TestRunUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), Config{Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}
