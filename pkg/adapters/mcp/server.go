// Package mcp exposes the oracle as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/ports"
	"github.com/aretw0/treeoracle/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MaxCount caps the number of samples one tool call may request.
const MaxCount = 100

// Oracle defines what the MCP server needs from the sample generator.
type Oracle interface {
	Registry() *registry.Registry
	BatchFrom(ctx context.Context, name string, seed int64, n int) ([]*domain.Sample, error)
}

// SampleResult is the structured output of generate_sample.
type SampleResult struct {
	Samples []*domain.Sample `json:"samples" jsonschema_description:"Generated samples, each a tree with its score"`
}

// GrammarInfo describes a registered grammar.
type GrammarInfo struct {
	Name    string   `json:"name" jsonschema_description:"Registry name of the grammar"`
	Start   string   `json:"start" jsonschema_description:"Start symbol"`
	Symbols []string `json:"symbols" jsonschema_description:"Nonterminal symbols"`
}

// GrammarList is the structured output of list_grammars.
type GrammarList struct {
	Grammars []GrammarInfo `json:"grammars"`
}

// Server wraps the oracle and exposes it as an MCP Server.
type Server struct {
	oracle    Oracle
	store     ports.SampleStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. store may be nil, in which
// case the get_sample tool is not offered.
func NewServer(oracle Oracle, store ports.SampleStore, version string) *Server {
	s := &Server{
		oracle:    oracle,
		store:     store,
		mcpServer: server.NewMCPServer("treeoracle-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: generate_sample
	generateTool := mcp.NewTool("generate_sample",
		mcp.WithDescription("Generate labelled trees from a registered grammar. Identical arguments yield identical samples."),
		mcp.WithString("grammar", mcp.Required(), mcp.Description("Grammar name, e.g. logical or rna")),
		mcp.WithNumber("seed", mcp.Description("Base seed; sample i uses seed+i (default 0)")),
		mcp.WithNumber("count", mcp.Description(fmt.Sprintf("Number of samples, 1 to %d (default 1)", MaxCount))),
		mcp.WithOutputSchema[SampleResult](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	// TOOL: list_grammars
	listTool := mcp.NewTool("list_grammars",
		mcp.WithDescription("List the grammars that can be sampled."),
		mcp.WithOutputSchema[GrammarList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListGrammars))

	if s.store == nil {
		return
	}

	// TOOL: get_sample
	s.mcpServer.AddTool(mcp.NewTool("get_sample",
		mcp.WithDescription("Fetch a previously generated sample by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Sample ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sample, err := s.store.Load(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(sample)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SampleResult, error) {
	name, _ := args["grammar"].(string)
	if name == "" {
		return SampleResult{}, fmt.Errorf("grammar is required")
	}

	var seed int64
	if v, ok := args["seed"].(float64); ok {
		seed = int64(v)
	}
	count := 1
	if v, ok := args["count"].(float64); ok {
		count = int(v)
	}
	if count < 1 || count > MaxCount {
		return SampleResult{}, fmt.Errorf("count must be between 1 and %d", MaxCount)
	}

	samples, err := s.oracle.BatchFrom(ctx, name, seed, count)
	if err != nil {
		slog.Warn("MCP generate_sample failed", "grammar", name, "error", err)
		return SampleResult{}, fmt.Errorf("generate failed: %w", err)
	}
	return SampleResult{Samples: samples}, nil
}

func (s *Server) handleListGrammars(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GrammarList, error) {
	reg := s.oracle.Registry()
	out := GrammarList{Grammars: []GrammarInfo{}}
	for _, name := range reg.Names() {
		e, err := reg.Get(name)
		if err != nil {
			continue
		}
		out.Grammars = append(out.Grammars, describe(name, e))
	}
	return out, nil
}

func describe(name string, e registry.Entry) GrammarInfo {
	info := GrammarInfo{Name: name, Start: string(e.Start), Symbols: []string{}}
	for _, sym := range e.Grammar.Symbols() {
		info.Symbols = append(info.Symbols, string(sym))
	}
	return info
}

func (s *Server) registerResources() {
	// EXPOSE: treeoracle://grammars
	s.mcpServer.AddResource(mcp.NewResource("treeoracle://grammars", "Registered grammars",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := s.handleListGrammars(ctx, mcp.CallToolRequest{}, nil)
		if err != nil {
			return nil, err
		}
		jsonBytes, _ := json.Marshal(list)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "treeoracle://grammars",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
