// Package mcp exposes a generator over the Model Context Protocol so
// agent clients can author grammar symbols and expand them.
//
// The server owns the concurrency contract of the engine: grammar
// mutation happens under an exclusive lock, expansion under a shared one.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/louisbranch/telltale/internal/generator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies the MCP server implementation.
	serverName = "telltale MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server wraps a generator behind MCP tools and resources.
type Server struct {
	gen       *generator.Generator
	mu        sync.RWMutex
	mcpServer *mcp.Server
}

// NewServer creates a configured MCP server around a generator. The
// generator may already hold a grammar; tools can extend it at runtime.
func NewServer(gen *generator.Generator) *Server {
	s := &Server{gen: gen}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, GrammarAddTool(), s.grammarAddHandler())
	mcp.AddTool(mcpServer, GenderSetTool(), s.genderSetHandler())
	mcp.AddTool(mcpServer, InstantiateTool(), s.instantiateHandler())
	mcp.AddTool(mcpServer, MessageTool(), s.messageHandler())
	mcpServer.AddResource(SymbolsResource(), s.symbolsResourceHandler())

	s.mcpServer = mcpServer
	return s
}

// Run serves MCP over the provided transport until context cancellation.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
