// Package mcp parses MCP command flags and serves a generator over stdio.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/telltale/internal/grammar"
	mcpserver "github.com/louisbranch/telltale/internal/mcp"
	"github.com/louisbranch/telltale/internal/platform/config"
	"github.com/louisbranch/telltale/internal/platform/otel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config holds MCP command configuration.
type Config struct {
	Grammar   string `env:"TELLTALE_GRAMMAR"`
	Store     string `env:"TELLTALE_DB"`
	Transport string `env:"TELLTALE_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Grammar, "grammar", cfg.Grammar, "path to a grammar JSON file loaded at startup")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "path to a SQLite grammar store loaded at startup")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport != "stdio" {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	gen, closeStore, err := grammar.BuildGenerator(ctx, cfg.Grammar, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("close grammar store: %v", err)
		}
	}()

	return mcpserver.NewServer(gen).Run(ctx, &mcp.StdioTransport{})
}
