package mcp

import (
	"context"
	"fmt"

	"github.com/louisbranch/telltale/internal/generator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/louisbranch/telltale/internal/mcp")

// maxInstantiateCount caps how many expansions one tool call may request.
const maxInstantiateCount = 100

// GrammarAddInput represents the MCP tool input for adding a symbol.
type GrammarAddInput struct {
	Symbol   string   `json:"symbol" jsonschema:"symbol name, optionally with a bracketed gender dependency like job[hero]"`
	Variants []string `json:"variants" jsonschema:"candidate replacement strings, one is chosen at random per expansion"`
}

// GrammarAddResult represents the MCP tool output for adding a symbol.
type GrammarAddResult struct {
	Symbol   string `json:"symbol" jsonschema:"canonical symbol name"`
	Variants int    `json:"variants" jsonschema:"number of registered variants"`
}

// GrammarAddTool defines the MCP tool schema for adding a symbol.
func GrammarAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "grammar_add",
		Description: "Registers a replacement rule: a symbol and its candidate variant strings. Re-adding a symbol overwrites it.",
	}
}

func (s *Server) grammarAddHandler() mcp.ToolHandlerFor[GrammarAddInput, GrammarAddResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GrammarAddInput) (*mcp.CallToolResult, GrammarAddResult, error) {
		_, span := tracer.Start(ctx, "mcp.grammar_add",
			trace.WithAttributes(attribute.String("symbol", input.Symbol)))
		defer span.End()

		if input.Symbol == "" {
			return nil, GrammarAddResult{}, fmt.Errorf("symbol is required")
		}

		s.mu.Lock()
		err := s.gen.Add(input.Symbol, input.Variants)
		s.mu.Unlock()
		if err != nil {
			span.RecordError(err)
			return nil, GrammarAddResult{}, fmt.Errorf("add symbol: %w", err)
		}

		return nil, GrammarAddResult{
			Symbol:   input.Symbol,
			Variants: len(input.Variants),
		}, nil
	}
}

// GenderSetInput represents the MCP tool input for pre-setting a gender.
type GenderSetInput struct {
	Symbol string `json:"symbol" jsonschema:"symbol name"`
	Gender string `json:"gender" jsonschema:"male, female, or neutral (m/f/n accepted)"`
}

// GenderSetResult represents the MCP tool output for pre-setting a gender.
type GenderSetResult struct {
	Symbol string `json:"symbol" jsonschema:"symbol name"`
	Gender string `json:"gender" jsonschema:"gender that was set"`
}

// GenderSetTool defines the MCP tool schema for pre-setting a gender.
func GenderSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "gender_set",
		Description: "Assigns a grammatical gender to a symbol without giving it any text, for agreement with externally decided genders.",
	}
}

func (s *Server) genderSetHandler() mcp.ToolHandlerFor[GenderSetInput, GenderSetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenderSetInput) (*mcp.CallToolResult, GenderSetResult, error) {
		_, span := tracer.Start(ctx, "mcp.gender_set",
			trace.WithAttributes(attribute.String("symbol", input.Symbol)))
		defer span.End()

		gender, err := generator.ParseGender(input.Gender)
		if err != nil {
			span.RecordError(err)
			return nil, GenderSetResult{}, fmt.Errorf("parse gender: %w", err)
		}

		s.mu.Lock()
		s.gen.SetGender(input.Symbol, gender)
		s.mu.Unlock()

		return nil, GenderSetResult{
			Symbol: input.Symbol,
			Gender: gender.String(),
		}, nil
	}
}

// InstantiateInput represents the MCP tool input for expanding a symbol.
type InstantiateInput struct {
	Symbol string `json:"symbol" jsonschema:"symbol to expand"`
	Seed   *int64 `json:"seed,omitempty" jsonschema:"optional seed for deterministic expansion; successive expansions use seed, seed+1, ..."`
	Count  int    `json:"count,omitempty" jsonschema:"number of expansions to produce (default 1, max 100)"`
}

// InstantiateResult represents the MCP tool output for expanding a symbol.
type InstantiateResult struct {
	Texts []string `json:"texts" jsonschema:"expanded texts"`
}

// InstantiateTool defines the MCP tool schema for expanding a symbol.
func InstantiateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "instantiate",
		Description: "Expands a grammar symbol into text, resolving nested references, gender agreement, and capitalization.",
	}
}

func (s *Server) instantiateHandler() mcp.ToolHandlerFor[InstantiateInput, InstantiateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InstantiateInput) (*mcp.CallToolResult, InstantiateResult, error) {
		_, span := tracer.Start(ctx, "mcp.instantiate",
			trace.WithAttributes(
				attribute.String("symbol", input.Symbol),
				attribute.Int("count", input.Count),
			))
		defer span.End()

		if input.Symbol == "" {
			return nil, InstantiateResult{}, fmt.Errorf("symbol is required")
		}
		count := input.Count
		if count <= 0 {
			count = 1
		}
		if count > maxInstantiateCount {
			return nil, InstantiateResult{}, fmt.Errorf("count %d exceeds maximum %d", count, maxInstantiateCount)
		}

		s.mu.RLock()
		defer s.mu.RUnlock()

		texts := make([]string, 0, count)
		for i := 0; i < count; i++ {
			var text string
			var err error
			if input.Seed != nil {
				text, err = s.gen.InstantiateWithSeed(input.Symbol, *input.Seed+int64(i))
			} else {
				text, err = s.gen.Instantiate(input.Symbol)
			}
			if err != nil {
				span.RecordError(err)
				return nil, InstantiateResult{}, fmt.Errorf("instantiate %s: %w", input.Symbol, err)
			}
			texts = append(texts, text)
		}

		return nil, InstantiateResult{Texts: texts}, nil
	}
}

// MessageBinding is one ordered symbol/value pair for message expansion.
type MessageBinding struct {
	Symbol string `json:"symbol" jsonschema:"symbol name"`
	Value  string `json:"value" jsonschema:"literal replacement value; may use marker syntax"`
}

// MessageInput represents the MCP tool input for ad hoc template expansion.
type MessageInput struct {
	Template string           `json:"template" jsonschema:"template text using the marker syntax"`
	Bindings []MessageBinding `json:"bindings,omitempty" jsonschema:"ordered symbol/value bindings applied before the template"`
	Seed     *int64           `json:"seed,omitempty" jsonschema:"optional seed for deterministic expansion"`
}

// MessageResult represents the MCP tool output for ad hoc template expansion.
type MessageResult struct {
	Text string `json:"text" jsonschema:"expanded text"`
}

// MessageTool defines the MCP tool schema for ad hoc template expansion.
func MessageTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "message",
		Description: "Expands a one-off template against the grammar without registering it, with optional literal bindings.",
	}
}

func (s *Server) messageHandler() mcp.ToolHandlerFor[MessageInput, MessageResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MessageInput) (*mcp.CallToolResult, MessageResult, error) {
		_, span := tracer.Start(ctx, "mcp.message",
			trace.WithAttributes(attribute.Int("bindings", len(input.Bindings))))
		defer span.End()

		bindings := make([]generator.Binding, 0, len(input.Bindings))
		for _, b := range input.Bindings {
			bindings = append(bindings, generator.Binding{Symbol: b.Symbol, Value: b.Value})
		}

		s.mu.RLock()
		defer s.mu.RUnlock()

		var text string
		var err error
		if input.Seed != nil {
			text, err = s.gen.MsgWithSeed(input.Template, bindings, *input.Seed)
		} else {
			text, err = s.gen.Msg(input.Template, bindings)
		}
		if err != nil {
			span.RecordError(err)
			return nil, MessageResult{}, fmt.Errorf("expand message: %w", err)
		}

		return nil, MessageResult{Text: text}, nil
	}
}
