// Package mcp exposes the content workflow as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/presentation/graph"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	GraphURI   = "folio://graph"
	MermaidURI = "folio://graph/mermaid"
)

// GenerateArgs are the arguments of the generate_content tool.
type GenerateArgs struct {
	Input   string `json:"input"`
	Degrade bool   `json:"degrade,omitempty"`
}

// GenerateResult aligns with the HTTP run response and provides a unified structure across adapters.
type GenerateResult struct {
	RunID          string   `json:"run_id" jsonschema_description:"Identifier of the run"`
	Attempts       int      `json:"attempts" jsonschema_description:"Number of question generation attempts"`
	History        []string `json:"history" jsonschema_description:"Steps executed, in order"`
	Degraded       bool     `json:"degraded" jsonschema_description:"True when rendered from content that failed review"`
	ProductPage    string   `json:"product_page" jsonschema_description:"Product page JSON document"`
	FAQ            string   `json:"faq" jsonschema_description:"FAQ page JSON document"`
	ComparisonPage string   `json:"comparison_page" jsonschema_description:"Comparison page JSON document"`
}

// Server wraps the folio Engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.ContentEngine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.ContentEngine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("folio-mcp", strings.TrimSpace(folio.Version)),
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

// ServeSSE starts the server on the given port using SSE and stops when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	generateTool := mcp.NewTool("generate_content",
		mcp.WithDescription("Turn a raw product description into product, FAQ and comparison page JSON documents."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Raw product description, one 'Key: Value' per line")),
		mcp.WithBoolean("degrade", mcp.Description("Render the best attempt when the quality gate keeps failing")),
		mcp.WithOutputSchema[GenerateResult](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the workflow transition table for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.Inspect())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleGenerate(ctx context.Context, _ mcp.CallToolRequest, args GenerateArgs) (GenerateResult, error) {
	if strings.TrimSpace(args.Input) == "" {
		return GenerateResult{}, errors.New("input is required")
	}

	state, err := s.engine.Run(ctx, args.Input)
	var runErr *domain.RunError
	if args.Degrade && errors.As(err, &runErr) && runErr.Kind == domain.KindExhaustedRetries && runErr.Best != nil {
		state, err = s.engine.Degrade(ctx, *runErr.Best)
	}
	if err != nil {
		slog.Warn("MCP generate_content failed", "run_id", state.RunID, "error", err)
		return GenerateResult{}, err
	}

	return GenerateResult{
		RunID:          state.RunID,
		Attempts:       state.RetryCount,
		History:        state.History,
		Degraded:       state.Degraded,
		ProductPage:    state.Artifacts.ProductPage,
		FAQ:            state.Artifacts.FAQ,
		ComparisonPage: state.Artifacts.ComparisonPage,
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Workflow Transition Table",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Inspect())
		if err != nil {
			return nil, fmt.Errorf("failed to inspect graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(MermaidURI, "Workflow Flowchart",
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		transitions := s.engine.Inspect()
		entry := domain.StepExtract
		if len(transitions) > 0 {
			entry = transitions[0].From
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      MermaidURI,
				MIMEType: "text/vnd.mermaid",
				Text:     graph.GenerateMermaid(entry, transitions, nil),
			},
		}, nil
	})
}
