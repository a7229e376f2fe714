package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// symbolsResourceURI addresses the registered symbol listing.
const symbolsResourceURI = "grammar://symbols"

// SymbolsResource defines the MCP resource listing registered symbols.
func SymbolsResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         symbolsResourceURI,
		Name:        "grammar_symbols",
		Description: "Names of every registered grammar symbol, sorted alphabetically.",
		MIMEType:    "application/json",
	}
}

func (s *Server) symbolsResourceHandler() mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_, span := tracer.Start(ctx, "mcp.symbols_resource")
		defer span.End()

		s.mu.RLock()
		symbols := s.gen.Symbols()
		s.mu.RUnlock()

		data, err := json.MarshalIndent(symbols, "", "  ")
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("encode symbol list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      symbolsResourceURI,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil
	}
}
