package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/penrose"
	"github.com/aretw0/penrose/internal/logging"
	"github.com/aretw0/penrose/internal/lsystem"
	"github.com/aretw0/penrose/internal/presentation/graph"
	"github.com/aretw0/penrose/pkg/adapters/memory"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/geom"
	"github.com/aretw0/penrose/pkg/memo"
	"github.com/aretw0/penrose/pkg/ports"
	"github.com/aretw0/penrose/pkg/schema"
	"github.com/aretw0/penrose/pkg/tiling"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RulesURI is the resource exposing the tiling definition.
const RulesURI = "penrose://rules"

// GenerateResponse aligns with the HTTP /generate payload.
type GenerateResponse struct {
	Tiling   string                 `json:"tiling" jsonschema_description:"Name of the tiling that was generated"`
	Request  domain.Request         `json:"request" jsonschema_description:"Effective depth and step length"`
	Stats    domain.GenerationStats `json:"stats" jsonschema_description:"Size of the expanded instruction string"`
	Bounds   geom.Bounds            `json:"bounds" jsonschema_description:"Axis-aligned bounding box of all segments"`
	Segments []geom.Segment         `json:"segments,omitempty" jsonschema_description:"Emitted line segments, omitted when include_segments is false"`
	Cached   bool                   `json:"cached" jsonschema_description:"Whether the result was served from the cache"`
}

// GrowthResponse describes instruction growth without generating segments.
type GrowthResponse struct {
	Tiling  string                   `json:"tiling" jsonschema_description:"Name of the tiling"`
	Depth   int                      `json:"depth" jsonschema_description:"Requested depth"`
	Factor  float64                  `json:"factor" jsonschema_description:"Length ratio of the last two passes"`
	Passes  []domain.GenerationStats `json:"passes" jsonschema_description:"Statistics after each pass, starting with the seed"`
	Mermaid string                   `json:"mermaid" jsonschema_description:"Mermaid flowchart of the rule dependencies"`
}

// Server wraps the generator and exposes it as an MCP Server.
type Server struct {
	gen       ports.Generator
	cache     ports.SegmentCache
	memo      *memo.Memo
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithCache memoises results in cache instead of process memory.
func WithCache(cache ports.SegmentCache) Option {
	return func(s *Server) {
		s.cache = cache
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(gen ports.Generator, opts ...Option) *Server {
	s := &Server{
		gen:       gen,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("penrose-mcp", strings.TrimSpace(penrose.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = memory.NewCache()
	}
	s.memo = memo.New(gen, s.cache, memo.WithLogger(s.logger))
	s.registerTools()
	s.registerResources()
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
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
	// TOOL: generate_tiling
	generateTool := mcp.NewTool("generate_tiling",
		mcp.WithDescription("Generate the line segments of the tiling at a given depth. Segment count grows about 4.45x per depth."),
		mcp.WithNumber("depth", mcp.Required(), mcp.Description("Recursion depth, at least 2. Passes performed are depth - 1.")),
		mcp.WithNumber("length", mcp.Description("Step length of every segment (default 10).")),
		mcp.WithBoolean("include_segments", mcp.Description("Include the segment list (default true).")),
		mcp.WithOutputSchema[GenerateResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	// TOOL: describe_growth
	growthTool := mcp.NewTool("describe_growth",
		mcp.WithDescription("Describe how the instruction string grows up to a depth, without generating segments."),
		mcp.WithNumber("depth", mcp.Required(), mcp.Description("Recursion depth, at least 2.")),
		mcp.WithOutputSchema[GrowthResponse](),
	)
	s.mcpServer.AddTool(growthTool, mcp.NewStructuredToolHandler(s.handleGrowth))
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GenerateResponse, error) {
	length, ok := args["length"]
	if !ok {
		length = 10.0
	}
	req, err := schema.DecodeRequest(map[string]any{"depth": args["depth"], "step_length": length})
	if err != nil {
		return GenerateResponse{}, err
	}

	res, hit, err := s.memo.Run(ctx, req)
	if err != nil {
		s.logger.Warn("MCP generate_tiling failed", "err", err, "depth", req.Depth)
		return GenerateResponse{}, fmt.Errorf("generate failed: %w", err)
	}

	resp := GenerateResponse{
		Tiling:   res.Tiling,
		Request:  res.Request,
		Stats:    res.Stats,
		Bounds:   res.Bounds,
		Segments: res.Segments,
		Cached:   hit,
	}
	if include, ok := args["include_segments"].(bool); ok && !include {
		resp.Segments = nil
	}
	return resp, nil
}

func (s *Server) handleGrowth(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GrowthResponse, error) {
	req, err := schema.DecodeRequest(map[string]any{"depth": args["depth"], "step_length": 0.0})
	if err != nil {
		return GrowthResponse{}, err
	}

	stats, err := s.gen.Growth(req.Depth)
	if err != nil {
		return GrowthResponse{}, fmt.Errorf("growth failed: %w", err)
	}

	t := s.gen.Tiling()
	return GrowthResponse{
		Tiling:  t.Name,
		Depth:   req.Depth,
		Factor:  lsystem.GrowthFactor(stats),
		Passes:  stats,
		Mermaid: graph.GenerateMermaid(t, nil),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: penrose://rules
	s.mcpServer.AddResource(mcp.NewResource(RulesURI, "Tiling Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(tiling.FromTiling(s.gen.Tiling()))
		if err != nil {
			return nil, fmt.Errorf("failed to encode tiling: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RulesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
